package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit/errors"
)

// Counter is a minimal persistent model used to exercise buckets and
// indexes.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

var _ CloneableData = (*Counter)(nil)

func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

func (c *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterMsg)(c))
}

func (c *Counter) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*counterMsg)(c))
}

type counterMsg Counter

func (m *counterMsg) Reset()         { *m = counterMsg{} }
func (m *counterMsg) String() string { return proto.CompactTextString(m) }
func (*counterMsg) ProtoMessage()    {}
