package models

// CartEntry 购物车项（商品加入时的快照，后续不刷新展示属性）
type CartEntry struct {
	URL              string `json:"url"`
	ProductName      string `json:"productName"`
	CompanyName      string `json:"companyName"`
	CredibilityScore int    `json:"credibilityScore"`
	ImageURL         string `json:"imageUrl,omitempty"`
	Price            *Money `json:"price"`
	Quantity         int    `json:"quantity"` // 恒 >= 1，降到 1 以下即删除
}

// Cart 有序购物车序列，URL 在序列内唯一
type Cart []CartEntry

// EntryFromProduct 将商品候选转换为数量为 1 的购物车项
func EntryFromProduct(p Product) CartEntry {
	return CartEntry{
		URL:              p.URL,
		ProductName:      p.ProductName,
		CompanyName:      p.CompanyName,
		CredibilityScore: p.CredibilityScore,
		ImageURL:         p.ImageURL,
		Price:            p.Price,
		Quantity:         1,
	}
}
