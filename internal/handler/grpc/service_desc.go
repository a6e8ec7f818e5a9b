// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"github.com/MKhiriev/go-tenant-vault/models"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the vault service.
const ServiceName = "vault.v1.VaultService"

// Full method names, as seen by interceptors.
const (
	MethodVersion     = "/" + ServiceName + "/Version"
	MethodLogin       = "/" + ServiceName + "/Login"
	MethodLogout      = "/" + ServiceName + "/Logout"
	MethodAddEntry    = "/" + ServiceName + "/AddEntry"
	MethodGetEntry    = "/" + ServiceName + "/GetEntry"
	MethodListEntries = "/" + ServiceName + "/ListEntries"
	MethodDeleteEntry = "/" + ServiceName + "/DeleteEntry"
)

// VaultServer is the server API of vault.v1.VaultService.
type VaultServer interface {
	Version(ctx context.Context, in *models.Empty) (*models.VersionInfo, error)
	Login(ctx context.Context, in *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, in *models.Empty) (*models.Empty, error)
	AddEntry(ctx context.Context, in *models.EntryRequest) (*models.Empty, error)
	GetEntry(ctx context.Context, in *models.EntryNameRequest) (*models.EntryResponse, error)
	ListEntries(ctx context.Context, in *models.Empty) (*models.EntryList, error)
	DeleteEntry(ctx context.Context, in *models.EntryNameRequest) (*models.Empty, error)
}

// RegisterVaultServer registers srv on s.
func RegisterVaultServer(s grpc.ServiceRegistrar, srv VaultServer) {
	s.RegisterService(&VaultServiceDesc, srv)
}

// VaultServiceDesc describes vault.v1.VaultService for [grpc.Server].
var VaultServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Version", Handler: handleVersion},
		{MethodName: "Login", Handler: handleLogin},
		{MethodName: "Logout", Handler: handleLogout},
		{MethodName: "AddEntry", Handler: handleAddEntry},
		{MethodName: "GetEntry", Handler: handleGetEntry},
		{MethodName: "ListEntries", Handler: handleListEntries},
		{MethodName: "DeleteEntry", Handler: handleDeleteEntry},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vault/v1/vault.json",
}

func handleVersion(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Version(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodVersion}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Version(ctx, req.(*models.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func handleLogin(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Login(ctx, req.(*models.LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleLogout(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).Logout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogout}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).Logout(ctx, req.(*models.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func handleAddEntry(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.EntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).AddEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAddEntry}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).AddEntry(ctx, req.(*models.EntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleGetEntry(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.EntryNameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).GetEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetEntry}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).GetEntry(ctx, req.(*models.EntryNameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handleListEntries(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).ListEntries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListEntries}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).ListEntries(ctx, req.(*models.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func handleDeleteEntry(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.EntryNameRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VaultServer).DeleteEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteEntry}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VaultServer).DeleteEntry(ctx, req.(*models.EntryNameRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// VaultClient is the client API of vault.v1.VaultService.
type VaultClient struct {
	cc grpc.ClientConnInterface
}

// NewVaultClient returns a client calling the vault service over cc with
// the json codec.
func NewVaultClient(cc grpc.ClientConnInterface) *VaultClient {
	return &VaultClient{cc: cc}
}

func (c *VaultClient) Version(ctx context.Context, in *models.Empty, opts ...grpc.CallOption) (*models.VersionInfo, error) {
	out := new(models.VersionInfo)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodVersion, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Login(ctx context.Context, in *models.LoginRequest, opts ...grpc.CallOption) (*models.LoginResponse, error) {
	out := new(models.LoginResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodLogin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Logout(ctx context.Context, in *models.Empty, opts ...grpc.CallOption) (*models.Empty, error) {
	out := new(models.Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodLogout, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) AddEntry(ctx context.Context, in *models.EntryRequest, opts ...grpc.CallOption) (*models.Empty, error) {
	out := new(models.Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodAddEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) GetEntry(ctx context.Context, in *models.EntryNameRequest, opts ...grpc.CallOption) (*models.EntryResponse, error) {
	out := new(models.EntryResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodGetEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) ListEntries(ctx context.Context, in *models.Empty, opts ...grpc.CallOption) (*models.EntryList, error) {
	out := new(models.EntryList)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodListEntries, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) DeleteEntry(ctx context.Context, in *models.EntryNameRequest, opts ...grpc.CallOption) (*models.Empty, error) {
	out := new(models.Empty)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, MethodDeleteEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
