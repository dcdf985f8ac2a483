package screenbuffer

import "context"

// QueryHandle is an opaque cursor returned by RecordSource.PrepareQuery and
// consumed by RecordSource.FetchRecord. Its shape is entirely up to the
// RecordSource implementation; the core never inspects it.
type QueryHandle any

// RecordSource is the four-method capability set the Fetch Loop needs from
// whatever is producing records. Any value providing these methods can be
// wired into ScreenBuffer.Start, whether it talks to a SQL table
// (sqlsource.Driver), a flat file (filesource.Driver), or a test fixture.
//
// PrepareQuery semantics:
//   - anchorId == nil: start from the newest record; the caller passes
//     descending == true.
//   - descending == true: records with Id < *anchorId, strictly decreasing.
//   - descending == false: records with Id > *anchorId, strictly increasing.
//   - at most count records are ever returned from the resulting handle.
type RecordSource interface {
	StartConnection(ctx context.Context) error
	StopConnection(ctx context.Context) error
	PrepareQuery(anchorId *int64, descending bool, count int) (QueryHandle, error)
	// FetchRecord returns the next record from handle, or (nil, nil) at
	// end-of-stream.
	FetchRecord(handle QueryHandle) (*Record, error)
}
