package vfs

import "fmt"

type OutOfRange struct {
	Index    uint64
	MaxIndex uint64
}

func (o OutOfRange) Error() string {
	return fmt.Sprintf("index out of range [%d], maximal index is [%d]", o.Index, o.MaxIndex)
}

type ArgumentError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (a ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", a.Name, a.Value, a.Reason)
}

type GeometryError struct {
	TotalBlocks     uint64
	DataRegionStart uint64
}

func (g GeometryError) Error() string {
	return fmt.Sprintf("filesystem too small: data region would start at block %d of %d",
		g.DataRegionStart, g.TotalBlocks)
}

type FormatError struct {
	Reason string
}

func (f FormatError) Error() string {
	return "invalid MiniVSFS image: " + f.Reason
}

type ResourceExhausted struct {
	Resource  string
	Needed    uint64
	Available uint64
}

func (r ResourceExhausted) Error() string {
	return fmt.Sprintf("not enough %s (need %d, available %d)", r.Resource, r.Needed, r.Available)
}

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (i IOError) Error() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %v", i.Op, i.Err)
	}
	return fmt.Sprintf("%s %s: %v", i.Op, i.Path, i.Err)
}

func (i IOError) Unwrap() error {
	return i.Err
}

type OutputExists struct {
	Path string
}

func (o OutputExists) Error() string {
	return fmt.Sprintf("output image %s already exists", o.Path)
}

type NotRegularFile struct {
	Path string
}

func (n NotRegularFile) Error() string {
	return fmt.Sprintf("%s is not a regular file", n.Path)
}

type DirectoryEntryNotFound struct {
	Name string
}

func (d DirectoryEntryNotFound) Error() string {
	return fmt.Sprintf("directory entry with name %s was not found", d.Name)
}
