package entity

import "time"

// Customer representa un cliente del directorio. Inmutable una vez creado;
// el flujo de préstamos solo lo consulta.
type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
