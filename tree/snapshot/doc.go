// Package snapshot provides the audit dump format and an mmap-backed reader
// for it. It is used by tree.Navigator.SaveSnapshot and tree.OpenAudit.
//
// The file format consists of:
//   - Header (64 bytes): magic, version, group size, type count, node count,
//     current group, seed, session id, depth
//   - Records: NodeCount fixed 20-byte node records {type, child, parent}
//
// All integers are little-endian. Absent links and placeholder types are -1.
// A snapshot is for offline inspection only; nothing reads it back into a
// live tree.
package snapshot
