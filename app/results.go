package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// ResultSet contains a list of keys or values returned by a query. Query
// responses always carry two result sets of the same length, one for keys
// and one for values.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

var _ remit.Persistent = (*ResultSet)(nil)

// Marshal serializes the result set using protobuf.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetMsg)(r))
}

// Unmarshal loads a protobuf serialized result set.
func (r *ResultSet) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*resultSetMsg)(r))
}

type resultSetMsg ResultSet

func (m *resultSetMsg) Reset()         { *m = resultSetMsg{} }
func (m *resultSetMsg) String() string { return proto.CompactTextString(m) }
func (*resultSetMsg) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []remit.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []remit.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]remit.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]remit.Model, len(kref))
	for i := range mods {
		mods[i] = remit.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// ToModels parses the key and value result sets of a query response.
func ToModels(keys, values []byte) ([]remit.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(errors.ErrState, "cannot parse keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(errors.ErrState, "cannot parse values")
	}
	return JoinResults(&k, &v)
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o remit.Persistent) error {
	// get the resultset
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}

	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
