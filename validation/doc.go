// Package validation checks request configurations before they reach the
// platform.
//
// Struct tags are evaluated with go-playground/validator and reported by
// json field name; a Checker adds the checks tags cannot express. Both
// produce Errors, which convert to a single *errors.AppError:
//
//	err := validation.New().
//		Merge(validation.Struct(cfg)).
//		When(cfg.Kind() == adapter.KindUpload, func(c *validation.Checker) {
//			c.Required("filePath", cfg.FilePath).Required("name", cfg.Name)
//		}).
//		Err()
package validation
