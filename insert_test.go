package sqlqb

import "testing"

func TestInsert(t *testing.T) {
	runTests(t, func(dbz *DB) []test {
		return []test{
			{
				"insert keeps payload order",
				dbz.Insert(NewParams().Set("name", "Mamadou").Set("age", 23)).Into("user"),
				"INSERT INTO `user`(`name`, `age`) VALUES(?, ?);",
				[]interface{}{"Mamadou", 23},
			},

			{
				"insert with set",
				dbz.InsertInto("user").Set("name", "Mamadou").Set("age", 23).Set("name", "Aly"),
				"INSERT INTO `user`(`name`, `age`) VALUES(?, ?);",
				[]interface{}{"Aly", 23},
			},

			{
				"insert with value map",
				dbz.InsertInto("user").Set("id", 1).ValueMap(map[string]interface{}{"name": "Mamadou", "age": 23}),
				"INSERT INTO `user`(`id`, `age`, `name`) VALUES(?, ?, ?);",
				[]interface{}{1, 23, "Mamadou"},
			},

			{
				"insert without connection",
				Insert(NewParams().Set("name", "Mamadou")).Into("user"),
				"INSERT INTO `user`(`name`) VALUES(?);",
				[]interface{}{"Mamadou"},
			},
		}
	})
}

func TestInsertDoesNotShareCallerPayload(t *testing.T) {
	payload := NewParams().Set("name", "Mamadou")
	stmt := Insert(payload).Into("user")

	payload.Set("age", 23)

	asSQL, _ := stmt.ToSQL()
	if asSQL != "INSERT INTO `user`(`name`) VALUES(?);" {
		t.Errorf("payload changes leaked into the statement: %s", asSQL)
	}
}
