// Package gpu uploads the scene's shared meshes and materials to a GPU device.
//
// A Pool mirrors the resource cache on the device: every mesh handle gets
// one vertex and one index buffer, every material handle one uniform
// buffer, no matter how many entities share them. Uploads are memoized by
// handle, so a scene rebuild that reuses cached handles uploads nothing.
// Sync also writes one model matrix per entity and compiles the unlit
// shader, so a pool that synced once is ready to draw.
//
//	pool, err := gpu.NewPoolFromProvider(provider)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	builder := scenegraph.NewBuilder(store, res, scenegraph.WithPool(pool))
//	...
//	if _, err := pool.Sync(res, builder.Entities()); err != nil {
//		// retry next frame
//	}
//
// The pool works with any hal.Device; tests use the noop backend.
package gpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/imageplanes/resource"
	"github.com/gogpu/imageplanes/scenegraph"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrClosed is returned by a pool after Close.
	ErrClosed = errors.New("gpu: pool is closed")

	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

	// ErrUnknownHandle is returned when a handle does not resolve in the resource cache.
	ErrUnknownHandle = errors.New("gpu: unknown resource handle")

	// ErrShader is returned when the unlit shader module cannot be built.
	ErrShader = errors.New("gpu: unlit shader unavailable")
)

// MeshBuffers are the device buffers of one mesh.
type MeshBuffers struct {
	Vertex      hal.Buffer
	Index       hal.Buffer
	VertexCount int
	IndexCount  int
	IndexFormat gputypes.IndexFormat
	Topology    gputypes.PrimitiveTopology
}

// MaterialBuffer is the uniform buffer of one material.
type MaterialBuffer struct {
	Uniform   hal.Buffer
	CullMode  gputypes.CullMode
	AlphaMode resource.AlphaMode
}

// Stats describes the pool contents.
type Stats struct {
	Meshes    int
	Materials int
	Bytes     uint64
	Uploads   uint64

	// Models is the number of model matrices written by the last Sync.
	Models int
}

// Pool owns the device copies of shared scene resources.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	closed bool

	meshes    map[resource.Handle[resource.Mesh]]*MeshBuffers
	materials map[resource.Handle[resource.Material]]*MaterialBuffer

	shader    hal.ShaderModule
	shaderErr error

	// models holds one ModelStride slot per entity of the last Sync.
	models    hal.Buffer
	modelCap  int
	modelsLen int

	bytes   uint64
	uploads uint64
}

// NewPool creates a pool on device and queue.
func NewPool(device hal.Device, queue hal.Queue) *Pool {
	return &Pool{
		device:    device,
		queue:     queue,
		format:    gputypes.TextureFormatBGRA8Unorm,
		meshes:    make(map[resource.Handle[resource.Mesh]]*MeshBuffers),
		materials: make(map[resource.Handle[resource.Material]]*MaterialBuffer),
	}
}

// NewPoolFromProvider creates a pool on the device of a host application.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewPoolFromProvider(provider gpucontext.DeviceProvider) (*Pool, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNoHAL
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	p := NewPool(device, queue)
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		p.format = f
	}
	logger().Debug("gpu pool attached to provider device", "format", p.format)
	return p, nil
}

// Ready reports whether the pool can accept uploads.
func (p *Pool) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.device != nil && p.queue != nil
}

// SurfaceFormat returns the color format render pipelines should target.
func (p *Pool) SurfaceFormat() gputypes.TextureFormat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format
}

// Shader returns the unlit shader module, compiling it on first use.
// A compile failure is remembered and returned on every call; a failure to
// create the module on the device is retried by the next call.
func (p *Pool) Shader() (hal.ShaderModule, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shaderLocked()
}

func (p *Pool) shaderLocked() (hal.ShaderModule, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.shader != nil {
		return p.shader, nil
	}
	if p.shaderErr != nil {
		return nil, p.shaderErr
	}

	code, err := compileSPIRV(unlitShaderWGSL)
	if err != nil {
		p.shaderErr = fmt.Errorf("%w: %w", ErrShader, err)
		logger().Warn("unlit shader unavailable", "err", err)
		return nil, p.shaderErr
	}
	mod, err := createShaderModule(p.device, "unlit", code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShader, err)
	}
	p.shader = mod
	logger().Debug("unlit shader compiled", "words", len(code))
	return p.shader, nil
}

// EnsureMesh uploads m for handle h unless h is already resident.
func (p *Pool) EnsureMesh(h resource.Handle[resource.Mesh], m resource.Mesh) (*MeshBuffers, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if mb, ok := p.meshes[h]; ok {
		return mb, nil
	}

	vb, err := p.upload(fmt.Sprintf("mesh%d_vertex", h.ID()), PackVertices(m),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	ib, err := p.upload(fmt.Sprintf("mesh%d_index", h.ID()), PackIndices(m),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		p.device.DestroyBuffer(vb)
		return nil, err
	}

	mb := &MeshBuffers{
		Vertex:      vb,
		Index:       ib,
		VertexCount: m.VertexCount(),
		IndexCount:  len(m.Indices),
		IndexFormat: gputypes.IndexFormatUint16,
		Topology:    m.Topology,
	}
	p.meshes[h] = mb
	logger().Debug("mesh uploaded", "handle", h.ID(), "vertices", mb.VertexCount, "indices", mb.IndexCount)
	return mb, nil
}

// EnsureMaterial uploads m for handle h unless h is already resident.
func (p *Pool) EnsureMaterial(h resource.Handle[resource.Material], m resource.Material) (*MaterialBuffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if mb, ok := p.materials[h]; ok {
		return mb, nil
	}

	ub, err := p.upload(fmt.Sprintf("material%d", h.ID()), PackMaterial(m),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	mb := &MaterialBuffer{Uniform: ub, CullMode: m.CullMode, AlphaMode: m.AlphaMode}
	p.materials[h] = mb
	return mb, nil
}

// upload creates a buffer and writes data into it. Called with mu held.
func (p *Pool) upload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if len(data) == 0 {
		// Zero-sized buffers are invalid; keep a minimal one so draws can bind it.
		data = make([]byte, 4)
	}
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	p.queue.WriteBuffer(buf, 0, data)
	p.bytes += uint64(len(data))
	p.uploads++
	return buf, nil
}

// Sync makes every mesh and material referenced by entities resident,
// writes one model matrix per entity into the model buffer and makes sure
// the unlit shader module exists. It returns the number of new mesh and
// material uploads. A failed Sync can be repeated; resident resources are
// not uploaded again.
func (p *Pool) Sync(res *resource.Cache, entities []scenegraph.Entity) (int, error) {
	before := p.Stats().Uploads

	seenMesh := make(map[resource.Handle[resource.Mesh]]bool)
	seenMat := make(map[resource.Handle[resource.Material]]bool)
	for _, e := range entities {
		if !seenMesh[e.Mesh] {
			seenMesh[e.Mesh] = true
			m, ok := res.Mesh(e.Mesh)
			if !ok {
				return 0, fmt.Errorf("%w: mesh %v of %s", ErrUnknownHandle, e.Mesh, e.Name)
			}
			if _, err := p.EnsureMesh(e.Mesh, m); err != nil {
				return 0, err
			}
		}
		if !seenMat[e.Material] {
			seenMat[e.Material] = true
			m, ok := res.MaterialData(e.Material)
			if !ok {
				return 0, fmt.Errorf("%w: material %v of %s", ErrUnknownHandle, e.Material, e.Name)
			}
			if _, err := p.EnsureMaterial(e.Material, m); err != nil {
				return 0, err
			}
		}
	}
	uploads := int(p.Stats().Uploads - before)

	if err := p.writeModels(entities); err != nil {
		return uploads, err
	}
	if _, err := p.Shader(); err != nil {
		return uploads, err
	}
	return uploads, nil
}

// writeModels packs the model matrix of every entity, in order, into the
// model uniform buffer, growing it when the scene outgrows it.
func (p *Pool) writeModels(entities []scenegraph.Entity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	n := max(len(entities), 1)
	if n > p.modelCap {
		buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "models",
			Size:  uint64(n * ModelStride),
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("gpu: create models: %w", err)
		}
		if p.models != nil {
			p.device.DestroyBuffer(p.models)
		}
		p.models, p.modelCap = buf, n
		p.bytes += uint64(n * ModelStride)
	}

	data := make([]byte, 0, len(entities)*ModelStride)
	for _, e := range entities {
		data = append(data, PackMatrix(e.Transform.Matrix())...)
	}
	if len(data) > 0 {
		p.queue.WriteBuffer(p.models, 0, data)
	}
	p.modelsLen = len(entities)
	return nil
}

// Mesh returns the resident buffers of h.
func (p *Pool) Mesh(h resource.Handle[resource.Mesh]) (*MeshBuffers, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	mb, ok := p.meshes[h]
	return mb, ok
}

// Material returns the resident buffer of h.
func (p *Pool) Material(h resource.Handle[resource.Material]) (*MaterialBuffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	mb, ok := p.materials[h]
	return mb, ok
}

// Models returns the model uniform buffer and the number of matrices in it.
// Entity i of the last Sync is at offset i*ModelStride.
func (p *Pool) Models() (hal.Buffer, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.models, p.modelsLen
}

// Stats returns current statistics.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Meshes:    len(p.meshes),
		Materials: len(p.materials),
		Bytes:     p.bytes,
		Uploads:   p.uploads,
		Models:    p.modelsLen,
	}
}

// Close destroys every device resource of the pool. The device itself
// belongs to the caller. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for h, mb := range p.meshes {
		p.device.DestroyBuffer(mb.Vertex)
		p.device.DestroyBuffer(mb.Index)
		delete(p.meshes, h)
	}
	for h, mb := range p.materials {
		p.device.DestroyBuffer(mb.Uniform)
		delete(p.materials, h)
	}
	if p.models != nil {
		p.device.DestroyBuffer(p.models)
		p.models, p.modelCap = nil, 0
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	logger().Debug("gpu pool closed", "bytes", p.bytes)
}
