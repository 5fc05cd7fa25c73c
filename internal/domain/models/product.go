package models

// ProductSize: единственная пара размер/количество, привязанная к товару
type ProductSize struct {
	Size     string `json:"size" bson:"size"`
	Quantity string `json:"quantity" bson:"quantity"`
}

// Product представляет товар каталога
type Product struct {
	ID    string      `json:"id" bson:"-"`
	Name  string      `json:"name" bson:"name"`
	Price string      `json:"price" bson:"price"` // цена хранится строкой, для арифметики нужен разбор
	Sizes ProductSize `json:"sizes" bson:"sizes"`
}

// ProductFilter: необязательные фильтры списка товаров
type ProductFilter struct {
	Name string // поиск по подстроке без учёта регистра
	Size string // точное совпадение sizes.size
}

// Page: окно выборки для offset-пагинации
type Page struct {
	Limit  int64
	Offset int64
}
