package models

// OrderItem: одна позиция заказа
type OrderItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Qty       int    `json:"qty" bson:"qty"`
}

// Order представляет заказ пользователя в том виде, в котором он хранится
type Order struct {
	ID     string      `json:"id" bson:"-"`
	UserID string      `json:"userId" bson:"userId"`
	Items  []OrderItem `json:"items" bson:"items"`
}

// JoinedLine: позиция заказа, сопоставленная с товаром.
// Product равен nil, если товар с ProductID не найден.
type JoinedLine struct {
	ProductID string
	Qty       int
	Product   *Product
}

// JoinedOrder: заказ с позициями, сопоставленными с товарами
type JoinedOrder struct {
	ID     string
	UserID string
	Lines  []JoinedLine
}

// ProductDetails: краткие сведения о товаре внутри позиции заказа
type ProductDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrichedItem: позиция заказа в ответе API
type EnrichedItem struct {
	ProductDetails ProductDetails `json:"productDetails"`
	Qty            int            `json:"qty"`
}

// EnrichedOrder: заказ с названиями товаров и итоговой суммой, рассчитанной при чтении
type EnrichedOrder struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Items  []EnrichedItem `json:"items"`
	Total  float64        `json:"total"`
}
