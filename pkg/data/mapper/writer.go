package mapper

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Writer appends fixed-size records to a snapshot file. Records are laid
// down little-endian in declaration order so the file can be read back
// with Reader.
type Writer[T any] struct {
	path string
	file *os.File
}

func NewWriter[T any](path string) *Writer[T] {
	return &Writer[T]{path: path}
}

func (w *Writer[T]) Open() error {
	var err error
	w.file, err = os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open data sink %q: %w", w.path, err)
	}
	return nil
}

func (w *Writer[T]) Close() error {
	return w.file.Close()
}

func (w *Writer[T]) Write(data T) error {
	if err := binary.Write(w.file, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("unable to write record to %q: %w", w.path, err)
	}
	return nil
}
