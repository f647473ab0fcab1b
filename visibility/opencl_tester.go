//go:build opencl

package visibility

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const cullKernelSource = `#pragma OPENCL EXTENSION cl_khr_fp64 : enable
__kernel void cull_bounds(
    const int count,
    __global const double* territories,
    __global const double* view,
    __global float* hits)
{
    int gid = get_global_id(0);
    if (gid >= count) {
        return;
    }
    int base = gid * 3;
    double x = territories[base];
    double y = territories[base + 1];
    double r = territories[base + 2];
    int inside = x + r >= view[0] && x - r <= view[1] &&
                 y + r >= view[2] && y - r <= view[3];
    hits[gid] = inside ? 1.0f : 0.0f;
}`

// OpenCLTester runs the bounds test for every territory in one kernel launch.
type OpenCLTester struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	viewBuf    *cl.MemObject
	terrBuf    *cl.MemObject
	hitBuf     *cl.MemObject
	capacity   int
	deviceName string

	packed  []float64
	hitHost []float32
}

// NewOpenCLTester selects a GPU device (falling back to a CPU device) and
// compiles the culling kernel.
func NewOpenCLTester() (*OpenCLTester, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	t := &OpenCLTester{deviceName: device.Name()}
	t.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	t.queue, err = t.context.CreateCommandQueue(device, 0)
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	t.program, err = t.context.CreateProgramWithSource([]string{cullKernelSource})
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := t.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		t.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	t.kernel, err = t.program.CreateKernel("cull_bounds")
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	t.viewBuf, err = t.context.CreateEmptyBuffer(cl.MemReadOnly, 4*int(unsafe.Sizeof(float64(0))))
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("allocating view buffer: %w", err)
	}
	return t, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// ensureCapacity grows the per-territory device buffers to hold n entries.
func (t *OpenCLTester) ensureCapacity(n int) error {
	if n <= t.capacity {
		return nil
	}
	if t.terrBuf != nil {
		t.terrBuf.Release()
		t.terrBuf = nil
	}
	if t.hitBuf != nil {
		t.hitBuf.Release()
		t.hitBuf = nil
	}
	terrBuf, err := t.context.CreateEmptyBuffer(cl.MemReadOnly, n*3*int(unsafe.Sizeof(float64(0))))
	if err != nil {
		return fmt.Errorf("allocating territory buffer: %w", err)
	}
	hitBuf, err := t.context.CreateEmptyBuffer(cl.MemWriteOnly, n*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		terrBuf.Release()
		return fmt.Errorf("allocating hit buffer: %w", err)
	}
	t.terrBuf, t.hitBuf = terrBuf, hitBuf
	t.capacity = n
	return nil
}

// Test implements BatchTester.
func (t *OpenCLTester) Test(territories []Territory, view Bounds, margin float64, hits []bool) error {
	n := len(territories)
	if n == 0 {
		return nil
	}
	if len(hits) < n {
		return fmt.Errorf("hit slice too short: %d < %d", len(hits), n)
	}
	if err := t.ensureCapacity(n); err != nil {
		return err
	}

	if cap(t.packed) < n*3 {
		t.packed = make([]float64, n*3)
	}
	packed := t.packed[:n*3]
	for i, terr := range territories {
		packed[i*3] = terr.X
		packed[i*3+1] = terr.Y
		packed[i*3+2] = terr.Radius
	}
	expanded := view.Expand(margin)
	viewData := [4]float64{expanded.Left, expanded.Right, expanded.Top, expanded.Bottom}

	f64 := int(unsafe.Sizeof(float64(0)))
	if _, err := t.queue.EnqueueWriteBuffer(t.viewBuf, false, 0, len(viewData)*f64, unsafe.Pointer(&viewData[0]), nil); err != nil {
		return fmt.Errorf("writing view buffer: %w", err)
	}
	if _, err := t.queue.EnqueueWriteBuffer(t.terrBuf, false, 0, len(packed)*f64, unsafe.Pointer(&packed[0]), nil); err != nil {
		return fmt.Errorf("writing territory buffer: %w", err)
	}
	if err := t.kernel.SetArgs(int32(n), t.terrBuf, t.viewBuf, t.hitBuf); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := t.queue.EnqueueNDRangeKernel(t.kernel, nil, []int{n}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}

	if cap(t.hitHost) < n {
		t.hitHost = make([]float32, n)
	}
	hitHost := t.hitHost[:n]
	if _, err := t.queue.EnqueueReadBufferFloat32(t.hitBuf, true, 0, hitHost, nil); err != nil {
		return fmt.Errorf("reading hit buffer: %w", err)
	}
	for i, v := range hitHost {
		hits[i] = v != 0
	}
	return nil
}

// DeviceName reports the OpenCL device in use.
func (t *OpenCLTester) DeviceName() string {
	return t.deviceName
}

// Close releases all device resources.
func (t *OpenCLTester) Close() {
	if t.hitBuf != nil {
		t.hitBuf.Release()
		t.hitBuf = nil
	}
	if t.terrBuf != nil {
		t.terrBuf.Release()
		t.terrBuf = nil
	}
	if t.viewBuf != nil {
		t.viewBuf.Release()
		t.viewBuf = nil
	}
	if t.kernel != nil {
		t.kernel.Release()
		t.kernel = nil
	}
	if t.program != nil {
		t.program.Release()
		t.program = nil
	}
	if t.queue != nil {
		t.queue.Release()
		t.queue = nil
	}
	if t.context != nil {
		t.context.Release()
		t.context = nil
	}
	t.capacity = 0
}
