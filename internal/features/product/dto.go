package product

// Requests

type CreateProductRequest struct {
	Title       string            `json:"title" validate:"required,min=2,max=120"`
	Description string            `json:"description" validate:"required,min=10,max=2000"`
	Price       float64           `json:"price" validate:"required,gt=0"`
	Photos      []string          `json:"photos" validate:"required,min=1,dive,url"`
	Category    string            `json:"category" validate:"required,len=24,hexadecimal"`
	Features    map[string]string `json:"features"`
	Stock       int64             `json:"stock" validate:"min=0"`
}

type UpdateProductRequest struct {
	ProductID   string            `json:"_id" validate:"required,len=24,hexadecimal"`
	Title       string            `json:"title" validate:"required,min=2,max=120"`
	Description string            `json:"description" validate:"required,min=10,max=2000"`
	Price       float64           `json:"price" validate:"required,gt=0"`
	Photos      []string          `json:"photos" validate:"required,min=1,dive,url"`
	Category    string            `json:"category" validate:"required,len=24,hexadecimal"`
	Features    map[string]string `json:"features"`
	Stock       int64             `json:"stock" validate:"min=0"`
}
