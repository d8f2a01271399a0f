package sqlqb

import "testing"

func TestUpdate(t *testing.T) {
	runTests(t, func(dbz *DB) []test {
		return []test{
			{
				"simple update",
				dbz.Update(NewParams().Set("name", "Mamadou")).From("user").Where("id", OpEq, 1),
				"UPDATE `user` SET name = ? WHERE id = ?;",
				[]interface{}{"Mamadou", 1},
			},

			{
				"update with set, set map and limit",
				dbz.Update(nil).Table("user").Set("status", 1).SetMap(map[string]interface{}{"b": 2, "a": "x"}).Where("id", OpGt, 10).OrWhere("id", OpLt, 5).Limit(3),
				"UPDATE `user` SET status = ?, a = ?, b = ? WHERE id > ? OR id < ? LIMIT 3;",
				[]interface{}{1, "x", 2, 10, 5},
			},

			{
				"update the same field it filters by",
				Update(NewParams().Set("id", 2)).Table("user").Where("id", OpEq, 1),
				"UPDATE `user` SET id = ? WHERE id = ?;",
				[]interface{}{2, 1},
			},
		}
	})
}
