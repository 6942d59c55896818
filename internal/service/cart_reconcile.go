package service

import (
	"github.com/trustcart/internal/models"

	"github.com/shopspring/decimal"
)

// 购物车合并纯函数。所有操作返回新序列，不修改入参，
// 持久化由调用方（CartService）负责。

// AddOrIncrement 同 URL 的条目数量加一，否则以数量 1 追加快照条目。
// 重复加入不刷新展示属性，条目保持加入时的快照。
func AddOrIncrement(cart models.Cart, product models.Product) models.Cart {
	next := cloneCart(cart)
	for i := range next {
		if next[i].URL == product.URL {
			next[i].Quantity++
			return next
		}
	}
	return append(next, models.EntryFromProduct(product))
}

// SetQuantity 将指定条目的数量改为 n；n < 1 等价于删除。
// 数量修改不改变条目在序列中的位置。
func SetQuantity(cart models.Cart, url string, quantity int) models.Cart {
	if quantity < 1 {
		return RemoveEntry(cart, url)
	}
	next := cloneCart(cart)
	for i := range next {
		if next[i].URL == url {
			next[i].Quantity = quantity
			break
		}
	}
	return next
}

// RemoveEntry 删除指定 URL 的条目，条目不存在时为空操作。
func RemoveEntry(cart models.Cart, url string) models.Cart {
	next := make(models.Cart, 0, len(cart))
	for _, entry := range cart {
		if entry.URL == url {
			continue
		}
		next = append(next, entry)
	}
	return next
}

// CartTotal 合计金额：价格未知的条目按 0 计入。
func CartTotal(cart models.Cart) models.Money {
	total := decimal.Zero
	for _, entry := range cart {
		if entry.Price == nil {
			continue
		}
		total = total.Add(entry.Price.Decimal.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}

// CartItemCount 商品件数合计（价格未知的条目同样计入）。
func CartItemCount(cart models.Cart) int {
	count := 0
	for _, entry := range cart {
		count += entry.Quantity
	}
	return count
}

func cloneCart(cart models.Cart) models.Cart {
	next := make(models.Cart, len(cart))
	copy(next, cart)
	return next
}
