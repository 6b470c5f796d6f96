package catalog

import (
	"github.com/google/uuid"

	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/value"
)

// Every catalog row type below has a hand-written codec calling the fixed
// field-order primitives in codec.go, plus ToValues and a matching schema
// function (TableInfoSchema, ColumnInfoSchema, ...) so catalog
// rows can be consumed by the operator pipeline the same way user rows are
// (spec.md §4.7).

// TableInfo is one row of db_tables.
type TableInfo struct {
	TableID     uuid.UUID
	TableName   string
	HeapFileID  uuid.UUID
	FirstPageID pager.PageID
}

func (r TableInfo) Encode() []byte {
	var buf []byte
	buf = PutUUID(buf, r.TableID)
	buf = PutString(buf, r.TableName)
	buf = PutUUID(buf, r.HeapFileID)
	buf = PutInt32(buf, int32(r.FirstPageID))
	return buf
}

func DecodeTableInfo(buf []byte) (TableInfo, error) {
	var r TableInfo
	var err error
	if r.TableID, buf, err = GetUUID(buf); err != nil {
		return r, err
	}
	if r.TableName, buf, err = GetString(buf); err != nil {
		return r, err
	}
	if r.HeapFileID, buf, err = GetUUID(buf); err != nil {
		return r, err
	}
	var fp int32
	if fp, _, err = GetInt32(buf); err != nil {
		return r, err
	}
	r.FirstPageID = pager.PageID(fp)
	return r, nil
}

func (r TableInfo) ToValues() []value.Value {
	return []value.Value{
		value.UUIDVal(r.TableID),
		value.String(r.TableName),
		value.UUIDVal(r.HeapFileID),
		value.PageID(int32(r.FirstPageID)),
	}
}

func TableInfoSchema() []Column {
	return []Column{
		{Name: "table_id", Type: value.INT}, // opaque 16-byte id, not schema-decoded dynamically
		{Name: "table_name", Type: value.TEXT},
		{Name: "heap_file_id", Type: value.INT},
		{Name: "first_page_id", Type: value.INT},
	}
}

// ColumnInfo is one row of db_attributes.
type ColumnInfo struct {
	TableID         uuid.UUID
	ColName         string
	TypeID          value.TypeID
	OrdinalPosition uint32
}

func (r ColumnInfo) Encode() []byte {
	var buf []byte
	buf = PutUUID(buf, r.TableID)
	buf = PutString(buf, r.ColName)
	buf = PutUint32(buf, uint32(r.TypeID))
	buf = PutUint32(buf, r.OrdinalPosition)
	return buf
}

func DecodeColumnInfo(buf []byte) (ColumnInfo, error) {
	var r ColumnInfo
	var err error
	if r.TableID, buf, err = GetUUID(buf); err != nil {
		return r, err
	}
	if r.ColName, buf, err = GetString(buf); err != nil {
		return r, err
	}
	var tid uint32
	if tid, buf, err = GetUint32(buf); err != nil {
		return r, err
	}
	r.TypeID = value.TypeID(tid)
	if r.OrdinalPosition, _, err = GetUint32(buf); err != nil {
		return r, err
	}
	return r, nil
}

func (r ColumnInfo) ToValues() []value.Value {
	return []value.Value{
		value.UUIDVal(r.TableID),
		value.String(r.ColName),
		value.Uint32(uint32(r.TypeID)),
		value.Uint32(r.OrdinalPosition),
	}
}

func ColumnInfoSchema() []Column {
	return []Column{
		{Name: "table_id", Type: value.INT},
		{Name: "col_name", Type: value.TEXT},
		{Name: "type_id", Type: value.INT},
		{Name: "ordinal_position", Type: value.INT},
	}
}

// TypeInfo is one row of db_types.
type TypeInfo struct {
	TypeID   value.TypeID
	Size     uint32 // 0 sentinel for variable-width types
	TypeName string
}

func (r TypeInfo) Encode() []byte {
	var buf []byte
	buf = PutUint32(buf, uint32(r.TypeID))
	buf = PutUint32(buf, r.Size)
	buf = PutString(buf, r.TypeName)
	return buf
}

func DecodeTypeInfo(buf []byte) (TypeInfo, error) {
	var r TypeInfo
	var err error
	var tid uint32
	if tid, buf, err = GetUint32(buf); err != nil {
		return r, err
	}
	r.TypeID = value.TypeID(tid)
	if r.Size, buf, err = GetUint32(buf); err != nil {
		return r, err
	}
	if r.TypeName, _, err = GetString(buf); err != nil {
		return r, err
	}
	return r, nil
}

func (r TypeInfo) ToValues() []value.Value {
	return []value.Value{
		value.Uint32(uint32(r.TypeID)),
		value.Uint32(r.Size),
		value.String(r.TypeName),
	}
}

func TypeInfoSchema() []Column {
	return []Column{
		{Name: "type_id", Type: value.INT},
		{Name: "size", Type: value.INT},
		{Name: "type_name", Type: value.TEXT},
	}
}

// DatabaseInfo is one row of db_databases (spec.md §3's optional
// multi-database table; see SPEC_FULL.md §5 for why it is included here).
type DatabaseInfo struct {
	DBID   uuid.UUID
	DBName string
}

func (r DatabaseInfo) Encode() []byte {
	var buf []byte
	buf = PutUUID(buf, r.DBID)
	buf = PutString(buf, r.DBName)
	return buf
}

func DecodeDatabaseInfo(buf []byte) (DatabaseInfo, error) {
	var r DatabaseInfo
	var err error
	if r.DBID, buf, err = GetUUID(buf); err != nil {
		return r, err
	}
	if r.DBName, _, err = GetString(buf); err != nil {
		return r, err
	}
	return r, nil
}

func (r DatabaseInfo) ToValues() []value.Value {
	return []value.Value{value.UUIDVal(r.DBID), value.String(r.DBName)}
}

func DatabaseInfoSchema() []Column {
	return []Column{
		{Name: "db_id", Type: value.INT},
		{Name: "db_name", Type: value.TEXT},
	}
}
