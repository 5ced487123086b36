package category

import (
	"strings"
	"time"
)

type Category struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type SaveCategoryRequest struct {
	Name string `json:"name"`
}

func (r *SaveCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrNameRequired
	}
	if len(r.Name) > 80 {
		return ErrNameTooLong
	}
	return nil
}
