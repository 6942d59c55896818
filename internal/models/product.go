package models

// Product 搜索引擎返回的商品候选（瞬态数据，以 URL 为唯一标识）
type Product struct {
	URL              string `json:"url"`
	ProductName      string `json:"productName"`
	CompanyName      string `json:"companyName"`
	CredibilityScore int    `json:"credibilityScore"`
	ImageURL         string `json:"imageUrl,omitempty"`
	Price            *Money `json:"price"` // 价格未知时为 null，不计入合计
	SearchPrompt     string `json:"searchPrompt,omitempty"`
}
