package service

import (
	"testing"

	"github.com/trustcart/internal/models"
)

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromFloat(amount)
	return &m
}

func testProduct(url string, price *models.Money) models.Product {
	return models.Product{
		URL:         url,
		ProductName: "product " + url,
		CompanyName: "test vendor",
		Price:       price,
	}
}

func TestAddOrIncrement(t *testing.T) {
	cart := models.Cart{}
	cart = AddOrIncrement(cart, testProduct("https://a.example/p1", moneyPtr(10)))
	cart = AddOrIncrement(cart, testProduct("https://a.example/p2", moneyPtr(5)))
	if len(cart) != 2 {
		t.Fatalf("entries want 2 got %d", len(cart))
	}
	if cart[0].Quantity != 1 || cart[1].Quantity != 1 {
		t.Fatalf("new entry quantity want 1 got %d / %d", cart[0].Quantity, cart[1].Quantity)
	}

	cart = AddOrIncrement(cart, testProduct("https://a.example/p1", moneyPtr(10)))
	if len(cart) != 2 {
		t.Fatalf("re-add should not append, entries got %d", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", cart[0].Quantity)
	}
}

func TestAddOrIncrementKeepsSnapshot(t *testing.T) {
	first := testProduct("https://a.example/p1", moneyPtr(10))
	first.ProductName = "name at add time"
	cart := AddOrIncrement(models.Cart{}, first)

	changed := testProduct("https://a.example/p1", moneyPtr(99))
	changed.ProductName = "refreshed name"
	cart = AddOrIncrement(cart, changed)

	if cart[0].ProductName != "name at add time" {
		t.Fatalf("snapshot should not refresh, got %s", cart[0].ProductName)
	}
	if !cart[0].Price.Decimal.Equal(moneyPtr(10).Decimal) {
		t.Fatalf("price snapshot should not refresh, got %s", cart[0].Price)
	}
}

func TestAddOrIncrementDoesNotMutateInput(t *testing.T) {
	cart := models.Cart{models.EntryFromProduct(testProduct("https://a.example/p1", moneyPtr(10)))}
	_ = AddOrIncrement(cart, testProduct("https://a.example/p1", moneyPtr(10)))
	if cart[0].Quantity != 1 {
		t.Fatalf("input cart mutated, quantity got %d", cart[0].Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	cart := models.Cart{
		models.EntryFromProduct(testProduct("https://a.example/p1", moneyPtr(10))),
		models.EntryFromProduct(testProduct("https://a.example/p2", moneyPtr(5))),
	}

	cart = SetQuantity(cart, "https://a.example/p1", 7)
	if cart[0].Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", cart[0].Quantity)
	}
	if cart[0].URL != "https://a.example/p1" {
		t.Fatalf("entry position should not change")
	}
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		cart := models.Cart{
			models.EntryFromProduct(testProduct("https://a.example/p1", moneyPtr(10))),
			models.EntryFromProduct(testProduct("https://a.example/p2", moneyPtr(5))),
		}
		cart = SetQuantity(cart, "https://a.example/p1", quantity)
		if len(cart) != 1 {
			t.Fatalf("quantity %d should remove entry, entries got %d", quantity, len(cart))
		}
		if cart[0].URL != "https://a.example/p2" {
			t.Fatalf("wrong entry removed, remaining %s", cart[0].URL)
		}
	}
}

func TestRemoveEntryAbsentIsNoop(t *testing.T) {
	cart := models.Cart{models.EntryFromProduct(testProduct("https://a.example/p1", moneyPtr(10)))}
	next := RemoveEntry(cart, "https://a.example/missing")
	if len(next) != 1 {
		t.Fatalf("removing absent entry should be a noop, entries got %d", len(next))
	}
}

func TestCartTotalNilPriceCountsAsZero(t *testing.T) {
	cart := models.Cart{
		models.EntryFromProduct(testProduct("https://a.example/p1", moneyPtr(10))),
		models.EntryFromProduct(testProduct("https://a.example/p2", nil)),
	}
	cart = SetQuantity(cart, "https://a.example/p1", 2)
	cart = SetQuantity(cart, "https://a.example/p2", 3)

	total := CartTotal(cart)
	if total.String() != "20.00" {
		t.Fatalf("total want 20.00 got %s", total)
	}
	if CartItemCount(cart) != 5 {
		t.Fatalf("item count want 5 got %d", CartItemCount(cart))
	}
}
