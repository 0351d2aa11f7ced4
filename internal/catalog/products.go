// Package catalog holds the storefront's product list.
package catalog

// Sizes every t-shirt is offered in.
var Sizes = []string{"XS", "S", "M", "L", "XL", "2XL"}

const sizeChart = "/images/sizechart.png"

// SizeMeasure is a garment measurement in centimetres.
type SizeMeasure struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Sleeve string `json:"sleeve"`
}

// Product is a catalog entry.
type Product struct {
	ID               int                    `json:"id"`
	Name             string                 `json:"name"`
	Price            float64                `json:"price"`
	Currency         string                 `json:"currency"`
	Category         string                 `json:"category"`
	Image            string                 `json:"image"`
	Images           []string               `json:"images"`
	Sizes            []string               `json:"sizes"`
	Features         []string               `json:"features"`
	CareInstructions []string               `json:"careInstructions"`
	SizeGuide        map[string]SizeMeasure `json:"sizeGuide"`
}

// HasSize reports whether the product is offered in size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

var careInstructions = []string{
	"Машинная стирка при 30°C",
	"Не отбеливать",
	"Сушка в барабане при низкой температуре",
	"Гладить при средней температуре",
	"Не подвергать химчистке",
}

var sizeGuide = map[string]SizeMeasure{
	"XS":  {Length: "63", Width: "42", Sleeve: "18"},
	"S":   {Length: "66", Width: "46", Sleeve: "20.5"},
	"M":   {Length: "67", Width: "48", Sleeve: "21"},
	"L":   {Length: "70", Width: "50", Sleeve: "21.5"},
	"XL":  {Length: "71.5", Width: "53.5", Sleeve: "22"},
	"2XL": {Length: "72.5", Width: "56.5", Sleeve: "23"},
}

func tshirt(id int, name string, price float64, image, design string) Product {
	return Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Currency: "KZT",
		Category: "tshirts",
		Image:    image,
		Images:   []string{image, sizeChart},
		Sizes:    Sizes,
		Features: []string{
			"100% хлопок",
			"Плотность: 275 гр",
			"Ребристая горловина",
			"Прямой OVERSIZE крой",
			design,
		},
		CareInstructions: careInstructions,
		SizeGuide:        sizeGuide,
	}
}

var products = []Product{
	tshirt(1, "Cotaque Jemais", 1300, "/images/cotaque_black_whitetext.png", "Шелкографический дизайн"),
	tshirt(2, "KZ", 15000, "/images/kz_black_whitetext.png", "Патриотический дизайн KZ"),
	tshirt(3, "Blink", 13000, "/images/blink_black_whitetext.png", "Смелый дизайн Blink"),
	tshirt(4, "Cotaque Jemais", 13000, "/images/cotaque_white_redtext.png", "Красный шелкографический дизайн"),
	tshirt(5, "Cotaque Jemais", 13000, "/images/cotaque_black_redtext.png", "Яркий красный принт"),
	tshirt(6, "Horse", 13000, "/images/horse_black_whitetext.png", "Графический дизайн Horse"),
	tshirt(7, "Cotaque Jemais", 13000, "/images/cotaque_white_blacktext.png", "Элегантный черный принт"),
	tshirt(8, "KZ", 15000, "/images/kz_white_blackfont.png", "Жирная типографика KZ"),
	tshirt(9, "Blink", 13000, "/images/blink_white_blacktext.png", "Яркая графика Blink"),
	tshirt(10, "Enjoyer", 13000, "/images/enjoyer_black_whitetext.png", "Дизайн образа жизни Enjoyer"),
	tshirt(11, "finest", 13000, "/images/finest.png", "Премиальный дизайн Finest"),
}

// All returns the catalog in display order.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Find looks a product up by id.
func Find(id int) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
