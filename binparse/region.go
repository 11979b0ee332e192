package binparse

// Region is a read only range of bytes. A borrowed region is a view on the
// memory of the source it comes from and stays valid as long as the source
// does. An owned region holds its own copy.
type Region struct {
	data  []byte
	owned bool
}

func Borrowed(b []byte) Region {
	return Region{data: b}
}

func Owned(b []byte) Region {
	return Region{data: b, owned: true}
}

// Bytes returns the content of the region. Callers must not modify it.
func (r Region) Bytes() []byte {
	return r.data
}

func (r Region) Len() int {
	return len(r.data)
}

func (r Region) Owned() bool {
	return r.owned
}
