package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName = "cashup.v1.CashUpService"

	getCurrencyMethod    = "/cashup.v1.CashUpService/GetCurrency"
	listCurrenciesMethod = "/cashup.v1.CashUpService/ListCurrencies"
	calculateMethod      = "/cashup.v1.CashUpService/Calculate"
	submitMethod         = "/cashup.v1.CashUpService/Submit"
)

// CashUpServiceServer is the server API for the cash-up service
type CashUpServiceServer interface {
	GetCurrency(context.Context, *GetCurrencyRequest) (*Currency, error)
	ListCurrencies(context.Context, *ListCurrenciesRequest) (*ListCurrenciesResponse, error)
	Calculate(context.Context, *CashUpRequest) (*CashUpSummary, error)
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
}

// RegisterCashUpServiceServer registers srv on s
func RegisterCashUpServiceServer(s grpc.ServiceRegistrar, srv CashUpServiceServer) {
	s.RegisterService(&CashUpServiceDesc, srv)
}

// CashUpServiceDesc describes the cash-up service. Messages use the JSON codec.
var CashUpServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CashUpServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCurrency", Handler: getCurrencyHandler},
		{MethodName: "ListCurrencies", Handler: listCurrenciesHandler},
		{MethodName: "Calculate", Handler: calculateHandler},
		{MethodName: "Submit", Handler: submitHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cashup/v1/cashup.json",
}

func getCurrencyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCurrencyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CashUpServiceServer).GetCurrency(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getCurrencyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CashUpServiceServer).GetCurrency(ctx, req.(*GetCurrencyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listCurrenciesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListCurrenciesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CashUpServiceServer).ListCurrencies(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listCurrenciesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CashUpServiceServer).ListCurrencies(ctx, req.(*ListCurrenciesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func calculateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CashUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CashUpServiceServer).Calculate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: calculateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CashUpServiceServer).Calculate(ctx, req.(*CashUpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CashUpServiceServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CashUpServiceServer).Submit(ctx, req.(*SubmitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CashUpServiceClient calls the cash-up service over a client connection.
// Every call is sent with the JSON content-subtype.
type CashUpServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCashUpServiceClient creates a client on cc
func NewCashUpServiceClient(cc grpc.ClientConnInterface) *CashUpServiceClient {
	return &CashUpServiceClient{cc: cc}
}

// GetCurrency calls the GetCurrency RPC
func (c *CashUpServiceClient) GetCurrency(ctx context.Context, in *GetCurrencyRequest, opts ...grpc.CallOption) (*Currency, error) {
	out := new(Currency)
	if err := c.invoke(ctx, getCurrencyMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCurrencies calls the ListCurrencies RPC
func (c *CashUpServiceClient) ListCurrencies(ctx context.Context, in *ListCurrenciesRequest, opts ...grpc.CallOption) (*ListCurrenciesResponse, error) {
	out := new(ListCurrenciesResponse)
	if err := c.invoke(ctx, listCurrenciesMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Calculate calls the Calculate RPC
func (c *CashUpServiceClient) Calculate(ctx context.Context, in *CashUpRequest, opts ...grpc.CallOption) (*CashUpSummary, error) {
	out := new(CashUpSummary)
	if err := c.invoke(ctx, calculateMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit calls the Submit RPC
func (c *CashUpServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error) {
	out := new(SubmitResponse)
	if err := c.invoke(ctx, submitMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CashUpServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}
