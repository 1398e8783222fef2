package domain

// JobCategory agrupa posiciones de trabajo (por ejemplo "Backend", "Data").
type JobCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// JobPosition es una posición concreta dentro de una categoría.
type JobPosition struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	IsActive   bool   `json:"is_active"`
}
