// Package sqlgen builds SQL statements fluently and renders them to
// parameterized text plus an ordered list of bind values.
//
// Statements are assembled from fragments; every fragment knows how to
// render itself and how to bind its parameters, and the two passes walk
// the fragment tree in the same left-to-right order. The placeholder a
// fragment renders therefore always lines up with the value it binds,
// which is the central guarantee of the package.
//
// # Building Statements
//
// A Builder is a factory for statement builders sharing one dialect:
//
//	sg := sqlgen.New(dialect.Standard)
//	sel := sg.Select("a", "b").From("t1")
//	sel.Where("a").Gt().Value(1)
//	sel.Where("b").Eq().Value("x")
//
//	fmt.Println(sel.SQL())
//	args, _ := sel.Args()
//
// SELECT, INSERT, UPDATE, DELETE and MERGE statements are supported, along
// with UNION-style compounds and a condition algebra (AND, OR, NOT,
// EXISTS, IN with automatic chunking).
//
// # Executing
//
// Builders hold no connection. SQL and Args feed any database/sql API, or
// use the Query and Exec helpers with a *sql.DB, *sql.Tx or *sql.Conn:
//
//	rows, err := sel.Query(ctx, db)
//
// # Batches
//
// Batch executes a lazily generated stream of same-shaped statements
// through one prepared statement, with optional flush and commit
// intervals:
//
//	res, err := sg.Batch().CommitEvery(1000).Exec(ctx, db, stmts)
//
// # Debug Mode
//
// With WithDebug enabled, rendered placeholders carry the bound value in
// a trailing comment, with comment-closing sequences escaped:
//
//	where
//	    a > ?  /* 1 */
package sqlgen
