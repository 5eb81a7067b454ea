package repo

type ProductFilter struct {
	Name     string
	Category string
	MinStock *int
	MaxStock *int
	Offset   *int
	Limit    *int
}
