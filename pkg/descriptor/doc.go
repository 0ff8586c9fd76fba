// Package descriptor reads per-library metadata descriptors (Maven POM files).
//
// # Records
//
// [Parse] turns descriptor text into a [Record]: name, description, version,
// homepage, source-control link, licenses, developers, organization and the
// optional parent coordinate. Records are read-only once produced.
//
// # Repair
//
// Descriptor files in local caches are occasionally prefixed with a byte
// order mark, whitespace or other stray bytes. [Repair] drops everything
// before the first '<' so such files still parse. Files that are not XML at
// all fail with an [errors.ErrCodeInvalidDescriptor] error.
//
// # Properties
//
// Simple "${...}" placeholders are expanded from the descriptor's own
// <properties> block and the project.* / parent.* built-ins. Unknown
// placeholders are kept verbatim.
package descriptor
