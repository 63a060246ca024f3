// Package model defines the data structures shared by the unfold layers.
package model

// Path represents a file system path.
type Path string

// EntryKind is the classification of a directory entry during a walk.
type EntryKind int

const (
	// EntryIgnored marks OS artifacts, excluded directories and anything that is
	// neither a regular file nor a directory (symlinks, devices, sockets).
	EntryIgnored EntryKind = iota
	// EntryFile marks a regular file that will be flattened.
	EntryFile
	// EntryDirectory marks a directory the walker descends into.
	EntryDirectory
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDirectory:
		return "directory"
	case EntryIgnored:
		return "ignored"
	}

	return "unknown"
}

// DiscoveredFile is a regular file found under the source root.
type DiscoveredFile struct {
	SourcePath Path
	BaseName   string
}

// Assignment binds a discovered file to its name inside the output directory.
type Assignment struct {
	File     DiscoveredFile
	DestName string
	Renamed  bool // true when BaseName collided with another file
}
