package domain

var Tables = []interface{}{
	&KVEntry{},
}
