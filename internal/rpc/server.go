package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// serviceName identifies the service in the gRPC method path
// ("/lights.Controller/Set") and in the health-check registry.
const serviceName = "lights.Controller"

// NewServer builds a *grpc.Server exposing svc's methods under
// serviceName plus the standard health-check service (spec.md §6: "a
// liveness probe exposes a standard health-check service"). No
// .proto-generated registration function exists in this repo, so
// serviceDesc is built by hand below; the wire schema is documented in
// lights.proto for reference.
func NewServer(svc *Service, opts ...grpc.ServerOption) *grpc.Server {
	server := grpc.NewServer(opts...)
	server.RegisterService(&serviceDesc, svc)

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	return server
}

// controllerServer is the method set a gRPC server must provide to
// back serviceDesc; *Service satisfies it.
type controllerServer interface {
	Set(context.Context, *SetArgs) (*Empty, error)
	SetAll(context.Context, *SetAllArgs) (*Empty, error)
	Fill(context.Context, *Color) (*Empty, error)
	Brightness(context.Context, *BrightnessArgs) (*Empty, error)
	StartAnimation(context.Context, *StartAnimationArgs) (*Empty, error)
	StopAnimation(context.Context, *Empty) (*Empty, error)
	RegisterAnimation(context.Context, *RegisterAnimationArgs) (*AnimationStatus, error)
	UnregisterAnimation(context.Context, *UnregisterAnimationArgs) (*Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*controllerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Set", Handler: setHandler},
		{MethodName: "SetAll", Handler: setAllHandler},
		{MethodName: "Fill", Handler: fillHandler},
		{MethodName: "Brightness", Handler: brightnessHandler},
		{MethodName: "StartAnimation", Handler: startAnimationHandler},
		{MethodName: "StopAnimation", Handler: stopAnimationHandler},
		{MethodName: "RegisterAnimation", Handler: registerAnimationHandler},
		{MethodName: "UnregisterAnimation", Handler: unregisterAnimationHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lights.proto",
}

func setHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).Set(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Set"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).Set(ctx, req.(*SetArgs))
	}
	return interceptor(ctx, in, info, handler)
}

func setAllHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetAllArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).SetAll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SetAll"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).SetAll(ctx, req.(*SetAllArgs))
	}
	return interceptor(ctx, in, info, handler)
}

func fillHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Color)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).Fill(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Fill"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).Fill(ctx, req.(*Color))
	}
	return interceptor(ctx, in, info, handler)
}

func brightnessHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(BrightnessArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).Brightness(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Brightness"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).Brightness(ctx, req.(*BrightnessArgs))
	}
	return interceptor(ctx, in, info, handler)
}

func startAnimationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StartAnimationArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).StartAnimation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/StartAnimation"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).StartAnimation(ctx, req.(*StartAnimationArgs))
	}
	return interceptor(ctx, in, info, handler)
}

func stopAnimationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).StopAnimation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/StopAnimation"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).StopAnimation(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func registerAnimationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterAnimationArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).RegisterAnimation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/RegisterAnimation"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).RegisterAnimation(ctx, req.(*RegisterAnimationArgs))
	}
	return interceptor(ctx, in, info, handler)
}

func unregisterAnimationHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UnregisterAnimationArgs)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Service).UnregisterAnimation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/UnregisterAnimation"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(*Service).UnregisterAnimation(ctx, req.(*UnregisterAnimationArgs))
	}
	return interceptor(ctx, in, info, handler)
}
