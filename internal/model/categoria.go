package model

// Categoria classifies products (running, casual, formal...).
type Categoria struct {
	ID          ID      `json:"id"`
	Nombre      string  `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion,omitempty"`
	Estado      *bool   `json:"estado,omitempty"`
}

func (c Categoria) CamposBusqueda() []string {
	return []string{c.Nombre, deref(c.Descripcion)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
