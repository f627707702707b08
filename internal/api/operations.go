package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/phrazzld/employee-api/internal/api/shared"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/service"
)

// Operation names accepted by POST /api/operations.
const (
	OpLogin              = "login"
	OpSignup             = "signup"
	OpGetAllEmployees    = "getAllEmployees"
	OpGetEmployeeByID    = "getEmployeeById"
	OpSearchEmployees    = "searchEmployeeByDesignationOrDepartment"
	OpAddEmployee        = "addEmployee"
	OpUpdateEmployeeByID = "updateEmployeeById"
	OpDeleteEmployeeByID = "deleteEmployeeById"
)

// idVariables are the accepted names of the employee id argument, in
// lookup order.
var idVariables = []string{"eid", "id"}

// OperationRequest is the body of POST /api/operations.
type OperationRequest struct {
	Operation string                 `json:"operation" validate:"required"`
	Variables map[string]interface{} `json:"variables"`
}

type operationFunc func(ctx context.Context, vars map[string]interface{}) (interface{}, error)

// OperationHandler dispatches named operations to the services.
type OperationHandler struct {
	authService     service.AuthService
	employeeService service.EmployeeService
	operations      map[string]operationFunc
}

// NewOperationHandler creates a new OperationHandler with the given dependencies.
func NewOperationHandler(
	authService service.AuthService,
	employeeService service.EmployeeService,
) *OperationHandler {
	h := &OperationHandler{
		authService:     authService,
		employeeService: employeeService,
	}
	h.operations = map[string]operationFunc{
		OpLogin:              h.login,
		OpSignup:             h.signup,
		OpGetAllEmployees:    h.getAllEmployees,
		OpGetEmployeeByID:    h.getEmployeeByID,
		OpSearchEmployees:    h.searchEmployees,
		OpAddEmployee:        h.addEmployee,
		OpUpdateEmployeeByID: h.updateEmployeeByID,
		OpDeleteEmployeeByID: h.deleteEmployeeByID,
	}
	return h
}

// Operations lists the supported operation names in sorted order.
func (h *OperationHandler) Operations() []string {
	names := make([]string, 0, len(h.operations))
	for name := range h.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute handles the /api/operations endpoint.
func (h *OperationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req OperationRequest

	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			shared.CodeBadUserInput, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.CodeBadUserInput, "operation is required")
		return
	}

	op, ok := h.operations[req.Operation]
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.CodeBadUserInput, fmt.Sprintf("Unknown operation: %s", req.Operation))
		return
	}

	ctx := logger.WithLogger(r.Context(),
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			With(slog.String("operation", req.Operation)))
	r = r.WithContext(ctx)

	if req.Variables == nil {
		req.Variables = map[string]interface{}{}
	}

	result, err := op(ctx, req.Variables)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, req.Operation, result)
}

func (h *OperationHandler) login(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	var in service.LoginInput
	if err := decodeVariables(vars, &in); err != nil {
		return nil, err
	}
	return h.authService.Login(ctx, in)
}

func (h *OperationHandler) signup(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	var in service.SignupInput
	if err := decodeVariables(vars, &in); err != nil {
		return nil, err
	}
	return h.authService.Signup(ctx, in)
}

func (h *OperationHandler) getAllEmployees(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	return h.employeeService.GetAllEmployees(ctx)
}

func (h *OperationHandler) getEmployeeByID(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := idVariable(vars)
	if err != nil {
		return nil, err
	}
	return h.employeeService.GetEmployeeByID(ctx, id)
}

func (h *OperationHandler) searchEmployees(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	var in service.SearchInput
	if err := decodeVariables(vars, &in); err != nil {
		return nil, err
	}
	return h.employeeService.SearchEmployees(ctx, in)
}

func (h *OperationHandler) addEmployee(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	return h.employeeService.AddEmployee(ctx, vars)
}

func (h *OperationHandler) updateEmployeeByID(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := idVariable(vars)
	if err != nil {
		return nil, err
	}
	return h.employeeService.UpdateEmployeeByID(ctx, id, vars)
}

func (h *OperationHandler) deleteEmployeeByID(ctx context.Context, vars map[string]interface{}) (interface{}, error) {
	id, err := idVariable(vars)
	if err != nil {
		return nil, err
	}
	return h.employeeService.DeleteEmployeeByID(ctx, id)
}

// decodeVariables maps the variables object onto a typed service input
// using its json tag names. Values of the wrong type are InvalidInput.
func decodeVariables(vars map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return domain.NewInternalError("failed to build variables decoder", err)
	}
	if err := dec.Decode(vars); err != nil {
		return &domain.Error{
			Kind:    domain.KindInvalidInput,
			Message: "Invalid operation variables",
			Err:     err,
		}
	}
	return nil
}

// idVariable returns the employee id argument. A missing id yields "" and
// is rejected by the service.
func idVariable(vars map[string]interface{}) (string, error) {
	for _, key := range idVariables {
		raw, ok := vars[key]
		if !ok || raw == nil {
			continue
		}
		id, ok := raw.(string)
		if !ok {
			return "", domain.NewInvalidInputError(key + " must be a string")
		}
		return id, nil
	}
	return "", nil
}
