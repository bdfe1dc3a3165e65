// Package catalogrpc describes the catalog.v1.CatalogService gRPC service.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" content-subtype, so no protobuf code generation is involved. Clients
// built with NewCatalogServiceClient select the codec automatically.
package catalogrpc

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	CodecName   = "json"
	ServiceName = "catalog.v1.CatalogService"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Items       []*Item `json:"items,omitempty"`
}

type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

type Empty struct{}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type UpdateCategoryRequest struct {
	Category *Category `json:"category"`
}

type DeleteRequest struct {
	ID int64 `json:"id"`
}

type ListItemsRequest struct {
	CategoryID *int64 `json:"categoryId,omitempty"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"pageSize"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
}

type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
}

type ItemResponse struct {
	Item *Item `json:"item"`
}

type UpdateItemRequest struct {
	Item *Item `json:"item"`
}

type CatalogServiceServer interface {
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*Empty, error)
	DeleteCategory(context.Context, *DeleteRequest) (*Empty, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	CreateItem(context.Context, *CreateItemRequest) (*ItemResponse, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*Empty, error)
	DeleteItem(context.Context, *DeleteRequest) (*Empty, error)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCategories", Handler: unary("ListCategories", CatalogServiceServer.ListCategories)},
		{MethodName: "CreateCategory", Handler: unary("CreateCategory", CatalogServiceServer.CreateCategory)},
		{MethodName: "UpdateCategory", Handler: unary("UpdateCategory", CatalogServiceServer.UpdateCategory)},
		{MethodName: "DeleteCategory", Handler: unary("DeleteCategory", CatalogServiceServer.DeleteCategory)},
		{MethodName: "ListItems", Handler: unary("ListItems", CatalogServiceServer.ListItems)},
		{MethodName: "CreateItem", Handler: unary("CreateItem", CatalogServiceServer.CreateItem)},
		{MethodName: "UpdateItem", Handler: unary("UpdateItem", CatalogServiceServer.UpdateItem)},
		{MethodName: "DeleteItem", Handler: unary("DeleteItem", CatalogServiceServer.DeleteItem)},
	},
	Streams: []grpc.StreamDesc{},
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](method string, call func(CatalogServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type CatalogServiceClient interface {
	ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, in *UpdateCategoryRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteCategory(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*Empty, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
	CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*ItemResponse, error)
	UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Empty, error)
	DeleteItem(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*Empty, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, "ListCategories", in, opts)
}

func (c *catalogServiceClient) CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "CreateCategory", in, opts)
}

func (c *catalogServiceClient) UpdateCategory(ctx context.Context, in *UpdateCategoryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateCategory", in, opts)
}

func (c *catalogServiceClient) DeleteCategory(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteCategory", in, opts)
}

func (c *catalogServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, "ListItems", in, opts)
}

func (c *catalogServiceClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*ItemResponse, error) {
	return invoke[ItemResponse](ctx, c.cc, "CreateItem", in, opts)
}

func (c *catalogServiceClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "UpdateItem", in, opts)
}

func (c *catalogServiceClient) DeleteItem(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteItem", in, opts)
}
