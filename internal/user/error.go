package user

import "errors"

var (
	// -- Validation & Input --
	ErrUsernameTooShort = errors.New("Nome de usuário deve ter pelo menos 3 caracteres")
	ErrUsernameTooLong  = errors.New("Nome de usuário deve ter no máximo 80 caracteres")
	ErrInvalidEmail     = errors.New("Email inválido")
	ErrInvalidPhone     = errors.New("Telefone inválido")
	ErrCPFRequired      = errors.New("CPF inválido")
	ErrPasswordTooShort = errors.New("Senha deve ter pelo menos 6 caracteres")
	ErrPasswordMismatch = errors.New("As senhas não coincidem")

	// -- State --
	ErrUsernameExists     = errors.New("Nome de usuário já existe")
	ErrEmailExists        = errors.New("Email já registrado")
	ErrCPFExists          = errors.New("CPF já cadastrado")
	ErrInvalidCredentials = errors.New("Nome de usuário ou senha inválidos")
	ErrInvalidResetToken  = errors.New("Token inválido ou expirado")
	ErrUserNotFound       = errors.New("user not found")
)
