package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type Blob struct {
	Vtbl *struct {
		_IUnknownVTbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

var (
	d3dcompiler = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	_D3DCompile = d3dcompiler.NewProc("D3DCompile")
)

const (
	COMPILE_ENABLE_STRICTNESS = 1 << 11
	COMPILE_DEBUG             = 1 << 0
	COMPILE_SKIP_OPTIMIZATION = 1 << 2
)

func (b *Blob) bytes() []byte {
	ptr, _, _ := syscall.SyscallN(b.Vtbl.GetBufferPointer, uintptr(unsafe.Pointer(b)))
	size, _, _ := syscall.SyscallN(b.Vtbl.GetBufferSize, uintptr(unsafe.Pointer(b)))
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size))
	return out
}

// Compile compiles HLSL source at runtime with d3dcompiler_47. The returned
// bytecode is an owned copy; the compiler's blobs are released before
// returning. Compiler diagnostics are folded into the error.
func Compile(src []byte, name, entrypoint, target string, flags uint32) ([]byte, error) {
	srcName := append([]byte(name), 0)
	entry := append([]byte(entrypoint), 0)
	tgt := append([]byte(target), 0)

	var code, errors *Blob
	r, _, _ := _D3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		uintptr(unsafe.Pointer(&srcName[0])),
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entry[0])),
		uintptr(unsafe.Pointer(&tgt[0])),
		uintptr(flags),
		0, // Flags2
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errors)),
	)
	if errors != nil {
		defer IUnknownRelease(unsafe.Pointer(errors), errors.Vtbl.Release)
	}
	if r != 0 {
		msg := ""
		if errors != nil {
			msg = string(errors.bytes())
		}
		return nil, fmt.Errorf("compiling %s (%s): %w: %s", name, target, ErrorCode{Name: "D3DCompile", Code: uint32(r)}, msg)
	}
	defer IUnknownRelease(unsafe.Pointer(code), code.Vtbl.Release)
	return code.bytes(), nil
}
