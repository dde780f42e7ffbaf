package category

// Requests

type CreateCategoryRequest struct {
	Name           string    `json:"name" validate:"required,min=2,max=60"`
	ParentCategory string    `json:"parentCategory" validate:"omitempty,len=24,hexadecimal"`
	Features       []Feature `json:"features" validate:"omitempty,dive"`
	Image          string    `json:"image" validate:"omitempty,url"`
}

type UpdateCategoryRequest struct {
	CategoryID     string    `json:"_id" validate:"required,len=24,hexadecimal"`
	Name           string    `json:"name" validate:"required,min=2,max=60"`
	ParentCategory string    `json:"parentCategory" validate:"omitempty,len=24,hexadecimal"`
	Features       []Feature `json:"features" validate:"omitempty,dive"`
	Image          string    `json:"image" validate:"omitempty,url"`
}

// Responses

// InheritedFeaturesResponse carries the union the admin product form renders:
// the category's own features first, then each ancestor's, walking up the
// parent chain.
type InheritedFeaturesResponse struct {
	CategoryID string    `json:"categoryID"`
	Features   []Feature `json:"features"`
}
