package entity

// Category agrupa productos; CodePrefix se usa para codificar productos de la categoría.
type Category struct {
	ID          int64
	Name        string
	Description string
	CodePrefix  string
	Active      bool // false = eliminada (soft delete)
}

// Unit unidad de medida (ej. "Kilogramo" / "kg").
type Unit struct {
	ID           int64
	Name         string
	Abbreviation string
	Description  string
	Active       bool
}

// Provider proveedor de productos; RUC de 10 a 13 dígitos.
type Provider struct {
	ID      int64
	Name    string
	RUC     string
	Phone   string
	Email   string
	Address string
	Active  bool
}
