package shopify

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// Sale settings live in product metafields under this namespace.
const (
	metafieldNamespace  = "custom"
	metaKeyOnSale       = "on_sale"
	metaKeyPercentOff   = "on_sale_percent_off"
	metaKeySaleImageURL = "on_sale_image"
)

const listProductsQuery = `query listProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        id
        title
        handle
        status
        images(first: 1) { edges { node { url } } }
        variants(first: 1) { edges { node { id price } } }
        onSale: metafield(namespace: "custom", key: "on_sale") { value }
        onSalePercentOff: metafield(namespace: "custom", key: "on_sale_percent_off") { value }
        onSaleImage: metafield(namespace: "custom", key: "on_sale_image") { value }
      }
    }
  }
}`

type metafieldValue struct {
	Value string `json:"value"`
}

type productNode struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Status string `json:"status"`
	Images struct {
		Edges []struct {
			Node struct {
				URL string `json:"url"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	OnSale           *metafieldValue `json:"onSale"`
	OnSalePercentOff *metafieldValue `json:"onSalePercentOff"`
	OnSaleImage      *metafieldValue `json:"onSaleImage"`
}

type listProductsData struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

// ListItems fetches the first page of products with their sale metafields.
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	var data listProductsData
	if err := c.do(ctx, listProductsQuery, map[string]any{"first": c.pageSize}, &data); err != nil {
		_ = level.Error(c.logger).Log("msg", "list products failed", "err", err)
		return nil, err
	}

	out := make([]domain.Item, 0, len(data.Products.Edges))
	for _, e := range data.Products.Edges {
		out = append(out, c.toItem(e.Node))
	}
	_ = level.Debug(c.logger).Log("msg", "products listed", "count", len(out))
	return out, nil
}

func (c *Client) toItem(n productNode) domain.Item {
	it := domain.Item{
		ID:     n.ID,
		Title:  n.Title,
		Handle: n.Handle,
		Status: domain.ItemStatus(strings.ToUpper(n.Status)),
		Sale:   saleFromMetafields(n.OnSale, n.OnSalePercentOff, n.OnSaleImage),
	}
	if len(n.Images.Edges) > 0 {
		it.ImageURL = n.Images.Edges[0].Node.URL
	}
	if len(n.Variants.Edges) > 0 {
		price, err := domain.NewMoneyFromDecimal(n.Variants.Edges[0].Node.Price)
		if err != nil {
			_ = level.Warn(c.logger).Log("msg", "unparsable variant price", "item_id", n.ID, "err", err)
		} else {
			it.BasePrice = price
		}
	}
	return it
}

// saleFromMetafields reads the sale settings leniently: a missing or malformed
// percentage reads as 0 and an empty image as none.
func saleFromMetafields(onSale, pct, img *metafieldValue) domain.SaleConfig {
	var (
		on      bool
		percent int
		image   *string
	)
	if onSale != nil {
		on = strings.EqualFold(strings.TrimSpace(onSale.Value), "true")
	}
	if pct != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(pct.Value)); err == nil {
			percent = n
		}
	}
	if img != nil && strings.TrimSpace(img.Value) != "" && img.Value != "null" {
		v := strings.TrimSpace(img.Value)
		image = &v
	}
	return domain.ReconstructSaleConfig(on, percent, image)
}
