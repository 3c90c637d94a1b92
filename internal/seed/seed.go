package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"customer-panel/internal/repository/capability"
)

type userSeed struct {
	Email       string
	DisplayName string
	Phone       string
	City        string
	Country     string
}

type enrollmentSeed struct {
	UserEmail        string
	CourseTitle      string
	LessonsTotal     int
	LessonsCompleted int
	Percentage       float64
	Status           string
	CompletedDaysAgo int // <0 means not completed
	CertificateLink  string
}

type orderSeed struct {
	CustomerEmail string
	Status        string
	TotalCents    int64
	Currency      string
	DaysAgo       int
	Items         []orderItemSeed
}

type orderItemSeed struct {
	Name       string
	Quantity   int
	TotalCents int64
}

// Apply inserts demo data for manual testing: a vendor with the customer-view
// capability, two courses sold through one product, and customers with mixed
// enrollment and order history. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "vendor@example.com", DisplayName: "Demo Vendor", Phone: "+1-555-0100", City: "Austin", Country: "US"},
		{Email: "manager@example.com", DisplayName: "Demo Shop Manager", City: "Austin", Country: "US"},
		{Email: "john.smith@example.com", DisplayName: "John Smith", Phone: "+1-555-0101", City: "Denver", Country: "US"},
		{Email: "maria.garcia@example.com", DisplayName: "Maria Garcia", Phone: "+1-555-0102", City: "Madrid", Country: "ES"},
		{Email: "li.wei@example.com", DisplayName: "Li Wei", City: "Shanghai", Country: "CN"},
	}

	ids := make(map[string]int64, len(users))
	for _, u := range users {
		id, err := ensureUser(ctx, pool, u)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		ids[u.Email] = id
	}

	vendorID := ids["vendor@example.com"]
	// Both the vendor and the shop manager get panel access.
	for _, email := range []string{"vendor@example.com", "manager@example.com"} {
		if err := grantCapability(ctx, pool, ids[email], capability.ViewCustomers); err != nil {
			return fmt.Errorf("grant capability to %s: %w", email, err)
		}
	}

	goCourse, err := ensureCourse(ctx, pool, "Intro to Go")
	if err != nil {
		return fmt.Errorf("ensure course: %w", err)
	}
	sqlCourse, err := ensureCourse(ctx, pool, "Practical SQL")
	if err != nil {
		return fmt.Errorf("ensure course: %w", err)
	}

	productID, err := ensureProduct(ctx, pool, vendorID, "Developer Bundle")
	if err != nil {
		return fmt.Errorf("ensure product: %w", err)
	}
	courseRef := fmt.Sprintf("[%d,%d]", goCourse, sqlCourse)
	if err := linkProductCourses(ctx, pool, productID, courseRef); err != nil {
		return fmt.Errorf("link product courses: %w", err)
	}

	enrollments := []enrollmentSeed{
		{
			UserEmail: "john.smith@example.com", CourseTitle: "Intro to Go",
			LessonsTotal: 12, LessonsCompleted: 12, Percentage: 100, Status: "completed",
			CompletedDaysAgo: 14, CertificateLink: "https://certs.example.com/go/john",
		},
		{
			UserEmail: "john.smith@example.com", CourseTitle: "Practical SQL",
			LessonsTotal: 10, LessonsCompleted: 4, Percentage: 40, Status: "enrolled",
			CompletedDaysAgo: -1,
		},
		{
			UserEmail: "maria.garcia@example.com", CourseTitle: "Practical SQL",
			LessonsTotal: 10, LessonsCompleted: 10, Percentage: 100, Status: "completed",
			CompletedDaysAgo: 3,
		},
		{
			UserEmail: "li.wei@example.com", CourseTitle: "Intro to Go",
			LessonsTotal: 12, LessonsCompleted: 0, Percentage: 0, Status: "enrolled",
			CompletedDaysAgo: -1,
		},
	}
	courseByTitle := map[string]int64{"Intro to Go": goCourse, "Practical SQL": sqlCourse}
	for _, e := range enrollments {
		if err := upsertEnrollment(ctx, pool, ids[e.UserEmail], courseByTitle[e.CourseTitle], e); err != nil {
			return fmt.Errorf("upsert enrollment %s/%s: %w", e.UserEmail, e.CourseTitle, err)
		}
	}

	orders := []orderSeed{
		{
			CustomerEmail: "john.smith@example.com", Status: "completed",
			TotalCents: 4900, Currency: "USD", DaysAgo: 30,
			Items: []orderItemSeed{{Name: "Developer Bundle", Quantity: 1, TotalCents: 4900}},
		},
		{
			CustomerEmail: "maria.garcia@example.com", Status: "processing",
			TotalCents: 9800, Currency: "USD", DaysAgo: 2,
			Items: []orderItemSeed{{Name: "Developer Bundle", Quantity: 2, TotalCents: 9800}},
		},
	}
	for _, o := range orders {
		if err := insertOrder(ctx, pool, vendorID, ids[o.CustomerEmail], o); err != nil {
			return fmt.Errorf("insert order for %s: %w", o.CustomerEmail, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (int64, error) {
	const q = `
INSERT INTO users (display_name, email, phone, city, country)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
ON CONFLICT (email) DO UPDATE SET display_name = EXCLUDED.display_name
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, u.DisplayName, u.Email, u.Phone, u.City, u.Country).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func grantCapability(ctx context.Context, pool *pgxpool.Pool, userID int64, name string) error {
	const q = `
INSERT INTO capabilities (user_id, capability)
VALUES ($1, $2)
ON CONFLICT (user_id, capability) DO NOTHING
`
	_, err := pool.Exec(ctx, q, userID, name)
	return err
}

func ensureCourse(ctx context.Context, pool *pgxpool.Pool, title string) (int64, error) {
	const selectQ = `SELECT id FROM courses WHERE title = $1 LIMIT 1`
	var id int64
	if err := pool.QueryRow(ctx, selectQ, title).Scan(&id); err == nil {
		return id, nil
	}
	const insertQ = `INSERT INTO courses (title) VALUES ($1) RETURNING id`
	if err := pool.QueryRow(ctx, insertQ, title).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, vendorID int64, title string) (int64, error) {
	const selectQ = `SELECT id FROM products WHERE vendor_id = $1 AND title = $2 LIMIT 1`
	var id int64
	if err := pool.QueryRow(ctx, selectQ, vendorID, title).Scan(&id); err == nil {
		return id, nil
	}
	const insertQ = `INSERT INTO products (vendor_id, title) VALUES ($1, $2) RETURNING id`
	if err := pool.QueryRow(ctx, insertQ, vendorID, title).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func linkProductCourses(ctx context.Context, pool *pgxpool.Pool, productID int64, courseRef string) error {
	const q = `
INSERT INTO product_courses (product_id, course_ref)
SELECT $1, $2
WHERE NOT EXISTS (
    SELECT 1 FROM product_courses WHERE product_id = $1 AND course_ref = $2
)
`
	_, err := pool.Exec(ctx, q, productID, courseRef)
	return err
}

func upsertEnrollment(ctx context.Context, pool *pgxpool.Pool, userID, courseID int64, e enrollmentSeed) error {
	var completedAt *time.Time
	if e.CompletedDaysAgo >= 0 {
		t := time.Now().AddDate(0, 0, -e.CompletedDaysAgo)
		completedAt = &t
	}
	const q = `
INSERT INTO enrollments (user_id, course_id, lessons_total, lessons_completed, percentage, status, completed_at, last_activity, certificate_link)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), NULLIF($8, ''))
ON CONFLICT (user_id, course_id) DO UPDATE
SET lessons_total = EXCLUDED.lessons_total,
    lessons_completed = EXCLUDED.lessons_completed,
    percentage = EXCLUDED.percentage,
    status = EXCLUDED.status,
    completed_at = EXCLUDED.completed_at,
    certificate_link = EXCLUDED.certificate_link
`
	_, err := pool.Exec(ctx, q, userID, courseID, e.LessonsTotal, e.LessonsCompleted, e.Percentage, e.Status, completedAt, e.CertificateLink)
	return err
}

func insertOrder(ctx context.Context, pool *pgxpool.Pool, sellerID, customerID int64, o orderSeed) error {
	createdAt := time.Now().AddDate(0, 0, -o.DaysAgo)

	const existsQ = `
SELECT id FROM orders
WHERE seller_id = $1 AND customer_id = $2 AND total_cents = $3 AND status = $4
LIMIT 1
`
	var orderID int64
	err := pool.QueryRow(ctx, existsQ, sellerID, customerID, o.TotalCents, o.Status).Scan(&orderID)
	if err == nil {
		return nil
	}

	const insertQ = `
INSERT INTO orders (seller_id, customer_id, status, total_cents, currency, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	if err := pool.QueryRow(ctx, insertQ, sellerID, customerID, o.Status, o.TotalCents, o.Currency, createdAt).Scan(&orderID); err != nil {
		return err
	}

	const itemQ = `
INSERT INTO order_items (order_id, name, quantity, total_cents)
VALUES ($1, $2, $3, $4)
`
	for _, it := range o.Items {
		if _, err := pool.Exec(ctx, itemQ, orderID, it.Name, it.Quantity, it.TotalCents); err != nil {
			return err
		}
	}
	return nil
}
