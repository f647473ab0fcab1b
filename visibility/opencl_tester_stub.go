//go:build !opencl

package visibility

import "errors"

type OpenCLTester struct{}

func NewOpenCLTester() (*OpenCLTester, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (t *OpenCLTester) Test(territories []Territory, view Bounds, margin float64, hits []bool) error {
	return errors.New("OpenCL tester unavailable")
}

func (t *OpenCLTester) DeviceName() string { return "" }

func (t *OpenCLTester) Close() {}
