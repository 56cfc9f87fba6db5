package sale

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "sale.v1.SaleConsole"

// ConsoleServer is the server API of the sale console. Requests and replies are
// google.protobuf.Struct messages.
type ConsoleServer interface {
	ListItems(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshItems(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearSelection(context.Context, *structpb.Struct) (*structpb.Struct, error)

	RequestAddToSale(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestRemoveFromSale(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestBulkUpdate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ToggleItem(context.Context, *structpb.Struct) (*structpb.Struct, error)

	ListPresets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPreset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SavePreset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestApplyPreset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestDeletePreset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportPresets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestImportPresets(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Confirm(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Cancel(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ConsoleServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ConsoleServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ConsoleServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the SaleConsole service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConsoleServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListItems", ConsoleServer.ListItems),
		unary("RefreshItems", ConsoleServer.RefreshItems),
		unary("ToggleSelection", ConsoleServer.ToggleSelection),
		unary("SelectAll", ConsoleServer.SelectAll),
		unary("ClearSelection", ConsoleServer.ClearSelection),
		unary("RequestAddToSale", ConsoleServer.RequestAddToSale),
		unary("RequestRemoveFromSale", ConsoleServer.RequestRemoveFromSale),
		unary("RequestBulkUpdate", ConsoleServer.RequestBulkUpdate),
		unary("UpdateItem", ConsoleServer.UpdateItem),
		unary("ToggleItem", ConsoleServer.ToggleItem),
		unary("ListPresets", ConsoleServer.ListPresets),
		unary("GetPreset", ConsoleServer.GetPreset),
		unary("SavePreset", ConsoleServer.SavePreset),
		unary("RequestApplyPreset", ConsoleServer.RequestApplyPreset),
		unary("RequestDeletePreset", ConsoleServer.RequestDeletePreset),
		unary("ExportPresets", ConsoleServer.ExportPresets),
		unary("RequestImportPresets", ConsoleServer.RequestImportPresets),
		unary("GetStatus", ConsoleServer.GetStatus),
		unary("Confirm", ConsoleServer.Confirm),
		unary("Cancel", ConsoleServer.Cancel),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sale/v1/console.proto",
}

func RegisterConsoleServer(s grpc.ServiceRegistrar, srv ConsoleServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls SaleConsole methods by name.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with fields as the request body.
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
