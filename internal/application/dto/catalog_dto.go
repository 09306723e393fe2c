package dto

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre" validate:"required,min=2,max=100"`
	Description string `json:"descripcion" validate:"omitempty,max=255"`
	CodePrefix  string `json:"codigo_prefijo" validate:"required,min=2,max=10"`
}

// UpdateCategoryRequest actualización parcial.
type UpdateCategoryRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Description *string `json:"descripcion" validate:"omitempty,max=255"`
	CodePrefix  *string `json:"codigo_prefijo" validate:"omitempty,min=2,max=10"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64  `json:"id_categoria"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	CodePrefix  string `json:"codigo_prefijo"`
	Active      bool   `json:"estado"`
}

// CreateUnitRequest entrada para crear una unidad de medida.
type CreateUnitRequest struct {
	Name         string `json:"nombre" validate:"required,min=2,max=50"`
	Abbreviation string `json:"abreviatura" validate:"required,min=1,max=10"`
	Description  string `json:"descripcion" validate:"omitempty,max=255"`
}

// UpdateUnitRequest actualización parcial.
type UpdateUnitRequest struct {
	Name         *string `json:"nombre" validate:"omitempty,min=2,max=50"`
	Abbreviation *string `json:"abreviatura" validate:"omitempty,min=1,max=10"`
	Description  *string `json:"descripcion" validate:"omitempty,max=255"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID           int64  `json:"id_unidad"`
	Name         string `json:"nombre"`
	Abbreviation string `json:"abreviatura"`
	Description  string `json:"descripcion"`
	Active       bool   `json:"estado"`
}

// CreateProviderRequest entrada para crear un proveedor.
type CreateProviderRequest struct {
	Name    string `json:"nombre" validate:"required,min=3,max=100"`
	RUC     string `json:"ruc" validate:"required,digits,min=10,max=13"`
	Phone   string `json:"telefono" validate:"required,digits,min=7,max=15"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"direccion" validate:"required,min=5,max=255"`
}

// UpdateProviderRequest actualización parcial.
type UpdateProviderRequest struct {
	Name    *string `json:"nombre" validate:"omitempty,min=3,max=100"`
	RUC     *string `json:"ruc" validate:"omitempty,digits,min=10,max=13"`
	Phone   *string `json:"telefono" validate:"omitempty,digits,min=7,max=15"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"direccion" validate:"omitempty,min=5,max=255"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID      int64  `json:"id_proveedor"`
	Name    string `json:"nombre"`
	RUC     string `json:"ruc"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
	Address string `json:"direccion"`
	Active  bool   `json:"estado"`
}
