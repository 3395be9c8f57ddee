// Package http provides Laravel-compatible JSON response helpers.
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(graph)                                   // 200 {"data": graph}
//	res.Error(http.StatusConflict, "cycle", "DEPENDENCY_CYCLE")
//	res.NotFound()                                       // 404 {"message": "Not found."}
//	res.ServerError()                                    // 500 {"message": "Server Error."}
package http
