package grpc

import (
	"context"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	catalogServiceName     = "catalog.v1.CatalogService"
	getItemsInfoFullMethod = "/" + catalogServiceName + "/GetItemsInfo"
)

// CatalogServiceServer — пакетный поиск товаров по id.
// Запрос: список строковых UUID. Ответ: {"items": [...], "not_found": [...]}.
type CatalogServiceServer interface {
	GetItemsInfo(ctx context.Context, req *structpb.ListValue) (*structpb.Struct, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetItemsInfo",
			Handler:    getItemsInfoHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

func getItemsInfoHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetItemsInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getItemsInfoFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetItemsInfo(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

// CatalogServiceClient — клиент для CatalogService.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) GetItemsInfo(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getItemsInfoFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type CatalogService struct {
	itemUC usecase.ItemUC
	logger logger.Logger
}

func NewCatalogService(itemUC usecase.ItemUC, logger logger.Logger) *CatalogService {
	return &CatalogService{itemUC: itemUC, logger: logger}
}

func (g *CatalogService) GetItemsInfo(ctx context.Context, req *structpb.ListValue) (*structpb.Struct, error) {
	const op = "grpc.GetItemsInfo"

	ids, err := fromGRPCIDs(req)
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(err)
	}

	res, err := g.itemUC.GetItemsInfo(ctx, usecase.NewGetItemsReq(ids))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	out, err := toGRPCItemsInfo(res)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}
	return out, nil
}
