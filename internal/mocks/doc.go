// Package mocks provides centralized mock implementations for testing.
//
// Two styles are offered. Function-field mocks (MockJWTService,
// MockPasswordHasher) fall back to canned values when a field is nil, which
// keeps simple tests short. testify/mock based mocks (TestifyMockUserStore,
// TestifyMockEmployeeStore) are for tests that assert on call arguments.
//
//	tokens := &mocks.MockJWTService{Token: "signed"}
//	users := new(mocks.TestifyMockUserStore)
//	users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
package mocks
