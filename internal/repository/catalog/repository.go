package catalog

import "context"

// Repository reads the product/course/group relation store.
type Repository interface {
	// ProductIDsByVendor lists the vendor's commerce products.
	ProductIDsByVendor(ctx context.Context, vendorID int64) ([]int64, error)
	// CoursesForProduct resolves the product-to-course relation. The stored
	// relation value may be a single course id or a collection; implementations
	// flatten both forms.
	CoursesForProduct(ctx context.Context, productID int64) ([]int64, error)
	// GroupsForProduct lists learning groups attached to the product.
	GroupsForProduct(ctx context.Context, productID int64) ([]int64, error)
	// CoursesInGroup lists the courses a group enrolls its members into.
	CoursesInGroup(ctx context.Context, groupID int64) ([]int64, error)
	// CourseTitle resolves a course's display title.
	CourseTitle(ctx context.Context, courseID int64) (string, error)
}
