// Package files groups the source-file handling used by a load run:
//   - filesystem: filesystem abstraction (OS and in-memory) for testability
//   - csvtable: CSV parsing and column type inference into catalogdb.Table
//
// # Usage
//
//	reader := csvtable.NewReader(filesystem.NewOSFileSystem(), checksum.New())
//	table, err := reader.ReadTable(catalogdb.TableSource{Name: "items", Path: "items.csv"})
package files
