package shopify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

const productUpdateMutation = `mutation updateProductSale($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      title
      handle
      status
      onSale: metafield(namespace: "custom", key: "on_sale") { value }
      onSalePercentOff: metafield(namespace: "custom", key: "on_sale_percent_off") { value }
      onSaleImage: metafield(namespace: "custom", key: "on_sale_image") { value }
    }
    userErrors {
      field
      message
    }
  }
}`

const metafieldsDeleteMutation = `mutation clearSaleImage($metafields: [MetafieldIdentifierInput!]!) {
  metafieldsDelete(metafields: $metafields) {
    deletedMetafields {
      ownerId
      namespace
      key
    }
    userErrors {
      field
      message
    }
  }
}`

type metafieldInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

type metafieldIdentifier struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrorsError carries the field-level errors Shopify reported for an update.
type UserErrorsError struct {
	ItemID string
	Errors []userError
}

func (e *UserErrorsError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		field := strings.Join(ue.Field, ".")
		if field == "" {
			parts = append(parts, ue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, ue.Message))
	}
	return fmt.Sprintf("shopify rejected update of %s: %s", e.ItemID, strings.Join(parts, "; "))
}

func (e *UserErrorsError) Unwrap() error {
	return domain.ErrCatalogUserErrors
}

type productUpdateData struct {
	ProductUpdate struct {
		Product    *productNode `json:"product"`
		UserErrors []userError  `json:"userErrors"`
	} `json:"productUpdate"`
}

type metafieldsDeleteData struct {
	MetafieldsDelete struct {
		UserErrors []userError `json:"userErrors"`
	} `json:"metafieldsDelete"`
}

// saleMetafields encodes cfg as metafield inputs. The image metafield is only
// written when an image is set; UpdateItemSaleConfig deletes it otherwise.
func saleMetafields(cfg domain.SaleConfig) []metafieldInput {
	out := []metafieldInput{
		{Namespace: metafieldNamespace, Key: metaKeyOnSale, Type: "boolean", Value: strconv.FormatBool(cfg.OnSale())},
		{Namespace: metafieldNamespace, Key: metaKeyPercentOff, Type: "number_integer", Value: strconv.Itoa(cfg.PercentOff())},
	}
	if img, ok := cfg.ImageURL(); ok {
		out = append(out, metafieldInput{Namespace: metafieldNamespace, Key: metaKeySaleImageURL, Type: "url", Value: img})
	}
	return out
}

// UpdateItemSaleConfig writes cfg to the product's sale metafields.
func (c *Client) UpdateItemSaleConfig(ctx context.Context, itemID string, cfg domain.SaleConfig) (*domain.Item, error) {
	vars := map[string]any{
		"input": map[string]any{
			"id":         itemID,
			"metafields": saleMetafields(cfg),
		},
	}

	var data productUpdateData
	if err := c.do(ctx, productUpdateMutation, vars, &data); err != nil {
		return nil, err
	}
	if len(data.ProductUpdate.UserErrors) > 0 {
		err := &UserErrorsError{ItemID: itemID, Errors: data.ProductUpdate.UserErrors}
		_ = level.Debug(c.logger).Log("msg", "update rejected", "item_id", itemID, "err", err)
		return nil, err
	}
	if data.ProductUpdate.Product == nil {
		return nil, fmt.Errorf("%w: productUpdate returned no product", domain.ErrCatalogTransport)
	}

	product := *data.ProductUpdate.Product
	if _, ok := cfg.ImageURL(); !ok && product.OnSaleImage != nil {
		if err := c.clearSaleImage(ctx, itemID); err != nil {
			return nil, err
		}
		product.OnSaleImage = nil
	}

	it := c.toItem(product)
	return &it, nil
}

// clearSaleImage removes the sale image metafield so a config without an image
// does not keep the previous one.
func (c *Client) clearSaleImage(ctx context.Context, itemID string) error {
	vars := map[string]any{
		"metafields": []metafieldIdentifier{
			{OwnerID: itemID, Namespace: metafieldNamespace, Key: metaKeySaleImageURL},
		},
	}

	var data metafieldsDeleteData
	if err := c.do(ctx, metafieldsDeleteMutation, vars, &data); err != nil {
		return err
	}
	if len(data.MetafieldsDelete.UserErrors) > 0 {
		err := &UserErrorsError{ItemID: itemID, Errors: data.MetafieldsDelete.UserErrors}
		_ = level.Debug(c.logger).Log("msg", "sale image delete rejected", "item_id", itemID, "err", err)
		return err
	}
	return nil
}
