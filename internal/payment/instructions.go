package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payment methods and delivery types as stored on orders.
const (
	MethodCash = "dinheiro"
	MethodCard = "cartao"
	MethodPix  = "pix"

	DeliveryHome   = "entrega"
	DeliveryPickup = "retirada"
)

var deliverySteps = map[string][]string{
	MethodCash: {
		"Tenha {{amount}} em dinheiro quando o entregador chegar",
		"Se precisar de troco, informe nas observações do pedido",
		"Confira o pedido antes de pagar",
	},
	MethodCard: {
		"O entregador leva a maquininha de cartão",
		"Aceitamos débito e crédito no valor de {{amount}}",
		"Guarde o comprovante impresso ou digital",
	},
	MethodPix: {
		"O entregador apresenta o QR Code PIX na entrega",
		"Confira o valor de {{amount}} antes de confirmar no seu banco",
		"Mostre o comprovante ao entregador",
	},
}

var pickupSteps = map[string][]string{
	MethodCash: {
		"Pague {{amount}} em dinheiro no caixa ao retirar o pedido #{{order_id}}",
		"Informe o número do pedido ao atendente",
	},
	MethodCard: {
		"Pague {{amount}} no cartão no caixa ao retirar o pedido #{{order_id}}",
		"Informe o número do pedido ao atendente",
	},
	MethodPix: {
		"Escaneie o QR Code PIX no caixa ao retirar o pedido #{{order_id}}",
		"Confira o valor de {{amount}} antes de confirmar no seu banco",
	},
}

var fallbackSteps = []string{
	"Pague {{amount}} diretamente ao restaurante",
	"Em caso de dúvida, entre em contato informando o pedido #{{order_id}}",
}

// GetInstructions returns the raw templates for a method and delivery type.
func GetInstructions(method, delivery string) []string {
	table := deliverySteps
	if delivery == DeliveryPickup {
		table = pickupSteps
	}
	if steps, ok := table[method]; ok {
		return steps
	}
	return fallbackSteps
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}

// FormatBRL renders an amount the way Brazilian receipts do: "R$ 1234,50".
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// Instructions fills the templates for one order.
func Instructions(method, delivery, orderID string, amount decimal.Decimal) []string {
	return InjectVariables(GetInstructions(method, delivery), InstructionVars{
		"amount":   FormatBRL(amount),
		"order_id": orderID,
	})
}
