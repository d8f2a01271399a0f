package sqlqb

import "testing"

func TestSelect(t *testing.T) {
	runTests(t, func(dbz *DB) []test {
		return []test{
			{
				"simple select all",
				dbz.Select().From("user"),
				"SELECT * FROM `user`;",
				[]interface{}{},
			},

			{
				"select everything drops columns",
				dbz.Select("id", "name").From("user").Everything(),
				"SELECT * FROM `user`;",
				[]interface{}{},
			},

			{
				"select cols with where clause",
				dbz.Select("id", "name").From("user").Where("age", OpGte, 18).Where("name", OpNe, "root"),
				"SELECT `id`, `name` FROM `user` WHERE age >= ? AND name != ?;",
				[]interface{}{18, "root"},
			},

			{
				"select with range on one field",
				dbz.Select("id").From("user").Where("age", OpGte, 18).Where("age", OpLt, 65),
				"SELECT `id` FROM `user` WHERE age >= ? AND age < ?;",
				[]interface{}{18, 65},
			},

			{
				"select with expressions and references",
				dbz.Select("COUNT(*) total", "u.id").From("user"),
				"SELECT COUNT(*) total, `u`.`id` FROM `user`;",
				[]interface{}{},
			},

			{
				"select with limit and offset",
				dbz.Select().From("user").Limit(10).Offset(5),
				"SELECT * FROM `user` LIMIT 10 OFFSET 5;",
				[]interface{}{},
			},

			{
				"select with zero limit",
				dbz.Select().From("user").Limit(0),
				"SELECT * FROM `user` LIMIT 0;",
				[]interface{}{},
			},

			{
				"select starting with an or condition",
				dbz.Select().From("user").OrWhere("id", OpEq, 1).Where("name", OpEq, "Mamadou"),
				"SELECT * FROM `user` WHERE id = ? AND name = ?;",
				[]interface{}{1, "Mamadou"},
			},

			{
				"select without connection",
				Select("id").From("user").Where("id", OpGt, 10).Limit(1),
				"SELECT `id` FROM `user` WHERE id > ? LIMIT 1;",
				[]interface{}{10},
			},
		}
	})
}
