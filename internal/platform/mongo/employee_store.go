package mongo

import (
	"context"
	"log/slog"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// employeeDocument is the stored shape of an employee. Attributes beyond
// the named ones are inlined at the top level of the document.
type employeeDocument struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	FirstName   string                 `bson:"first_name"`
	LastName    string                 `bson:"last_name"`
	Designation string                 `bson:"designation,omitempty"`
	Department  string                 `bson:"department,omitempty"`
	Extra       map[string]interface{} `bson:",inline"`
}

func newEmployeeDocument(e *domain.Employee) employeeDocument {
	return employeeDocument{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Designation: e.Designation,
		Department:  e.Department,
		Extra:       e.Extra,
	}
}

func (d *employeeDocument) toDomain() *domain.Employee {
	e := &domain.Employee{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Designation: d.Designation,
		Department:  d.Department,
	}
	for k, v := range d.Extra {
		if k == "__v" {
			continue
		}
		if e.Extra == nil {
			e.Extra = make(map[string]any, len(d.Extra))
		}
		e.Extra[k] = normalize(v)
	}
	return e
}

// normalize converts driver container types into plain maps and slices so
// extras marshal to JSON the way they were received.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = normalize(e)
		}
		return m
	case primitive.A:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = normalize(e)
		}
		return s
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}

// EmployeeStore implements store.EmployeeStore on the employees collection.
type EmployeeStore struct {
	col    *mongo.Collection
	logger *slog.Logger
}

var _ store.EmployeeStore = (*EmployeeStore)(nil)

// NewEmployeeStore creates an EmployeeStore over col.
func NewEmployeeStore(col *mongo.Collection, log *slog.Logger) *EmployeeStore {
	if log == nil {
		log = slog.Default()
	}
	return &EmployeeStore{col: col, logger: log.With(slog.String("collection", EmployeesCollection))}
}

// Create implements store.EmployeeStore.Create.
func (s *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	res, err := s.col.InsertOne(ctx, newEmployeeDocument(employee))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to insert employee", redact.ErrAttr(err))
		return MapError(err, "employee")
	}
	employee.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByID implements store.EmployeeStore.GetByID.
func (s *EmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc employeeDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, MapError(err, "employee")
	}
	return doc.toDomain(), nil
}

// Find implements store.EmployeeStore.Find.
func (s *EmployeeStore) Find(
	ctx context.Context,
	filter domain.EmployeeFilter,
) ([]*domain.Employee, error) {
	query := bson.M{}
	if filter.Designation != "" {
		query["designation"] = filter.Designation
	}
	if filter.Department != "" {
		query["department"] = filter.Department
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	defer cur.Close(ctx)

	employees := make([]*domain.Employee, 0)
	for cur.Next(ctx) {
		var doc employeeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, MapError(err, "employee")
		}
		employees = append(employees, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, MapError(err, "employee")
	}
	return employees, nil
}

// Update implements store.EmployeeStore.Update with a single $set so the
// merge is atomic on the server.
func (s *EmployeeStore) Update(
	ctx context.Context,
	id string,
	patch domain.EmployeePatch,
) (*domain.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	// $set rejects an empty document.
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	set := bson.M{}
	for k, v := range patch.Fields() {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc employeeDocument
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, MapError(err, "employee")
	}
	return doc.toDomain(), nil
}

// Delete implements store.EmployeeStore.Delete.
func (s *EmployeeStore) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc employeeDocument
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, MapError(err, "employee")
	}
	return doc.toDomain(), nil
}
