package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData carries the raw pixels and descriptor needed to upload
// a texture during bind group initialization.
type TextureStagingData struct {
	Data          []byte
	Width         uint32
	Height        uint32
	Format        wgpu.TextureFormat
	Usage         wgpu.TextureUsage
	MipLevelCount uint32
	Label         string
}

// SamplerStagingData carries the sampler configuration used when a bind
// group entry declares a sampler binding. Zero-valued fields fall back to
// repeat addressing with linear filtering.
type SamplerStagingData struct {
	AddressModeU  wgpu.AddressMode
	AddressModeV  wgpu.AddressMode
	AddressModeW  wgpu.AddressMode
	MagFilter     wgpu.FilterMode
	MinFilter     wgpu.FilterMode
	MipmapFilter  wgpu.MipmapFilterMode
	LodMinClamp   float32
	LodMaxClamp   float32
	Compare       wgpu.CompareFunction
	MaxAnisotropy uint16
	Label         string
}
