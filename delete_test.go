package sqlqb

import "testing"

func TestDelete(t *testing.T) {
	runTests(t, func(dbz *DB) []test {
		return []test{
			{
				"simple delete",
				dbz.DeleteFrom("user"),
				"DELETE FROM `user`;",
				[]interface{}{},
			},

			{
				"delete with or conditions",
				dbz.Delete().From("users").Where("id", OpEq, 5).OrWhere("id", OpEq, 6),
				"DELETE FROM `users` WHERE id = ? OR id = ?;",
				[]interface{}{5, 6},
			},

			{
				"delete with limit",
				Delete().From("users").Where("status", OpEq, 0).Limit(100),
				"DELETE FROM `users` WHERE status = ? LIMIT 100;",
				[]interface{}{0},
			},

			{
				"delete with custom operator",
				Delete().From("users").Where("name", "LIKE", "tmp_%"),
				"DELETE FROM `users` WHERE name LIKE ?;",
				[]interface{}{"tmp_%"},
			},
		}
	})
}
