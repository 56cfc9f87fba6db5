package sale

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

func field(req *structpb.Struct, key string) (*structpb.Value, bool) {
	if req == nil {
		return nil, false
	}
	v, ok := req.GetFields()[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func requireString(req *structpb.Struct, key string) (string, error) {
	v, ok := field(req, key)
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if s.StringValue == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s.StringValue, nil
}

func optionalString(req *structpb.Struct, key string) (string, error) {
	v, ok := field(req, key)
	if !ok {
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s.StringValue, nil
}

func requireBool(req *structpb.Struct, key string) (bool, error) {
	v, ok := field(req, key)
	if !ok {
		return false, fmt.Errorf("%s is required", key)
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%s must be a bool", key)
	}
	return b.BoolValue, nil
}

// optionalInt reads a whole number; absent fields yield def.
func optionalInt(req *structpb.Struct, key string, def int) (int, error) {
	v, ok := field(req, key)
	if !ok {
		return def, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return int(n.NumberValue), nil
}

func optionalStrings(req *structpb.Struct, key string) ([]string, error) {
	v, ok := field(req, key)
	if !ok {
		return nil, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%s must be a list", key)
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for i, item := range list.ListValue.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok || s.StringValue == "" {
			return nil, fmt.Errorf("%s[%d] must be a non-empty string", key, i)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

type saleFields struct {
	itemID     string
	onSale     bool
	percentOff int
	imageURL   string
}

func validateSaleFields(req *structpb.Struct, needItem bool) (saleFields, error) {
	var (
		out saleFields
		err error
	)
	if needItem {
		if out.itemID, err = requireString(req, "item_id"); err != nil {
			return out, err
		}
	}
	if out.onSale, err = requireBool(req, "on_sale"); err != nil {
		return out, err
	}
	if out.percentOff, err = optionalInt(req, "percent_off", 0); err != nil {
		return out, err
	}
	if out.imageURL, err = optionalString(req, "image_url"); err != nil {
		return out, err
	}
	return out, nil
}
