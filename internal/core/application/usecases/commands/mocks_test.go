package commands_test

import (
	"context"
	"time"

	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/domain/model/batch"
	"mestrace/internal/core/domain/model/downtime"
	"mestrace/internal/core/domain/model/handover"
	"mestrace/internal/core/domain/model/kernel"
	"mestrace/internal/core/domain/model/ledger"
	"mestrace/internal/core/domain/model/order"
	"mestrace/internal/core/domain/model/process"
	"mestrace/internal/core/domain/model/rework"
	"mestrace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockMORepository struct{ mock.Mock }

func (m *MockMORepository) Add(ctx context.Context, mo *order.ManufacturingOrder) error {
	args := m.Called(ctx, mo)
	return args.Error(0)
}

func (m *MockMORepository) Update(ctx context.Context, mo *order.ManufacturingOrder) error {
	args := m.Called(ctx, mo)
	return args.Error(0)
}

func (m *MockMORepository) Get(ctx context.Context, id kernel.UUID) (*order.ManufacturingOrder, error) {
	args := m.Called(ctx, id)
	if mo, ok := args.Get(0).(*order.ManufacturingOrder); ok {
		return mo, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMORepository) GetByNumber(ctx context.Context, moNumber string) (*order.ManufacturingOrder, error) {
	args := m.Called(ctx, moNumber)
	if mo, ok := args.Get(0).(*order.ManufacturingOrder); ok {
		return mo, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockBatchRepository struct{ mock.Mock }

func (m *MockBatchRepository) Add(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*batch.Batch); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*batch.Batch, error) {
	args := m.Called(ctx, moID)
	if bs, ok := args.Get(0).([]*batch.Batch); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBatchRepository) NextSequence(ctx context.Context, moID kernel.UUID) (int, error) {
	args := m.Called(ctx, moID)
	return args.Int(0), args.Error(1)
}

type MockFGVerificationRepository struct{ mock.Mock }

func (m *MockFGVerificationRepository) Add(ctx context.Context, v *batch.FinishedGoodsVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockFGVerificationRepository) Update(ctx context.Context, v *batch.FinishedGoodsVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockFGVerificationRepository) Get(ctx context.Context, id kernel.UUID) (*batch.FinishedGoodsVerification, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*batch.FinishedGoodsVerification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFGVerificationRepository) GetByBatchID(ctx context.Context, batchID kernel.UUID) (*batch.FinishedGoodsVerification, error) {
	args := m.Called(ctx, batchID)
	if v, ok := args.Get(0).(*batch.FinishedGoodsVerification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockExecutionRepository struct{ mock.Mock }

func (m *MockExecutionRepository) Add(ctx context.Context, e *process.ProcessExecution) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExecutionRepository) Update(ctx context.Context, e *process.ProcessExecution) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExecutionRepository) Get(ctx context.Context, id kernel.UUID) (*process.ProcessExecution, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*process.ProcessExecution); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExecutionRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*process.ProcessExecution, error) {
	args := m.Called(ctx, moID)
	if es, ok := args.Get(0).([]*process.ProcessExecution); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *process.ProcessAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *process.ProcessAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*process.ProcessAssignment, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*process.ProcessAssignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByExecutionID(ctx context.Context, executionID kernel.UUID) (*process.ProcessAssignment, error) {
	args := m.Called(ctx, executionID)
	if a, ok := args.Get(0).(*process.ProcessAssignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, al *process.BatchAllocation) error {
	args := m.Called(ctx, al)
	return args.Error(0)
}

func (m *MockAllocationRepository) Update(ctx context.Context, al *process.BatchAllocation) error {
	args := m.Called(ctx, al)
	return args.Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*process.BatchAllocation, error) {
	args := m.Called(ctx, id)
	if al, ok := args.Get(0).(*process.BatchAllocation); ok {
		return al, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAllocationRepository) GetOpenByBatchID(ctx context.Context, batchID kernel.UUID) (*process.BatchAllocation, error) {
	args := m.Called(ctx, batchID)
	if al, ok := args.Get(0).(*process.BatchAllocation); ok {
		return al, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockVerificationRepository struct{ mock.Mock }

func (m *MockVerificationRepository) Add(ctx context.Context, v *handover.BatchReceiptVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationRepository) Update(ctx context.Context, v *handover.BatchReceiptVerification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationRepository) Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptVerification, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*handover.BatchReceiptVerification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVerificationRepository) GetByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptVerification, error) {
	args := m.Called(ctx, allocationID)
	if v, ok := args.Get(0).(*handover.BatchReceiptVerification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReceiptLogRepository struct{ mock.Mock }

func (m *MockReceiptLogRepository) Add(ctx context.Context, l *handover.BatchReceiptLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockReceiptLogRepository) Update(ctx context.Context, l *handover.BatchReceiptLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockReceiptLogRepository) Get(ctx context.Context, id kernel.UUID) (*handover.BatchReceiptLog, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*handover.BatchReceiptLog); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReceiptLogRepository) GetOpenByAllocationID(ctx context.Context, allocationID kernel.UUID) (*handover.BatchReceiptLog, error) {
	args := m.Called(ctx, allocationID)
	if l, ok := args.Get(0).(*handover.BatchReceiptLog); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCompletionRepository struct{ mock.Mock }

func (m *MockCompletionRepository) Add(ctx context.Context, c *rework.BatchProcessCompletion) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompletionRepository) Get(ctx context.Context, id kernel.UUID) (*rework.BatchProcessCompletion, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*rework.BatchProcessCompletion); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompletionRepository) GetLatestCycleNumber(ctx context.Context, batchID, executionID kernel.UUID) (int, error) {
	args := m.Called(ctx, batchID, executionID)
	return args.Int(0), args.Error(1)
}

type MockReworkBatchRepository struct{ mock.Mock }

func (m *MockReworkBatchRepository) Add(ctx context.Context, r *rework.ReworkBatch) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReworkBatchRepository) Update(ctx context.Context, r *rework.ReworkBatch) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReworkBatchRepository) Get(ctx context.Context, id kernel.UUID) (*rework.ReworkBatch, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*rework.ReworkBatch); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFIReworkRepository struct{ mock.Mock }

func (m *MockFIReworkRepository) Add(ctx context.Context, f *rework.FinalInspectionRework) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFIReworkRepository) Update(ctx context.Context, f *rework.FinalInspectionRework) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFIReworkRepository) Get(ctx context.Context, id kernel.UUID) (*rework.FinalInspectionRework, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*rework.FinalInspectionRework); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFIReworkRepository) GetLatestByBatchID(ctx context.Context, batchID kernel.UUID) (*rework.FinalInspectionRework, error) {
	args := m.Called(ctx, batchID)
	if f, ok := args.Get(0).(*rework.FinalInspectionRework); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) Add(ctx context.Context, s *downtime.ProcessStop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Update(ctx context.Context, s *downtime.ProcessStop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Get(ctx context.Context, id kernel.UUID) (*downtime.ProcessStop, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*downtime.ProcessStop); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStopRepository) GetOpenByExecutionID(ctx context.Context, executionID kernel.UUID) (*downtime.ProcessStop, error) {
	args := m.Called(ctx, executionID)
	if s, ok := args.Get(0).(*downtime.ProcessStop); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStopRepository) GetResolvedByExecutionAndDay(ctx context.Context, executionID kernel.UUID, day time.Time) ([]*downtime.ProcessStop, error) {
	args := m.Called(ctx, executionID, day)
	if ss, ok := args.Get(0).([]*downtime.ProcessStop); ok {
		return ss, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStopRepository) GetExecutionsWithStopsOnDay(ctx context.Context, day time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, day)
	if ids, ok := args.Get(0).([]kernel.UUID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSummaryRepository struct{ mock.Mock }

func (m *MockSummaryRepository) Upsert(ctx context.Context, s *downtime.ProcessDowntimeSummary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSummaryRepository) GetByExecutionAndDay(ctx context.Context, executionID kernel.UUID, day time.Time) (*downtime.ProcessDowntimeSummary, error) {
	args := m.Called(ctx, executionID, day)
	if s, ok := args.Get(0).(*downtime.ProcessDowntimeSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLedgerRepository struct{ mock.Mock }

func (m *MockLedgerRepository) Append(ctx context.Context, e *ledger.ProcessActivityLog) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetAllByBatchID(ctx context.Context, batchID kernel.UUID) ([]*ledger.ProcessActivityLog, error) {
	args := m.Called(ctx, batchID)
	if es, ok := args.Get(0).([]*ledger.ProcessActivityLog); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) GetAllByMOID(ctx context.Context, moID kernel.UUID) ([]*ledger.ProcessActivityLog, error) {
	args := m.Called(ctx, moID)
	if es, ok := args.Get(0).([]*ledger.ProcessActivityLog); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

type MockInventoryLookup struct{ mock.Mock }

func (m *MockInventoryLookup) HeatNumbersAvailable(ctx context.Context, heatNumbers []string) (bool, error) {
	args := m.Called(ctx, heatNumbers)
	return args.Bool(0), args.Error(1)
}

type MockProcessCatalog struct{ mock.Mock }

func (m *MockProcessCatalog) Pipeline(ctx context.Context, productCode string) ([]ports.ProcessDefinition, error) {
	args := m.Called(ctx, productCode)
	if defs, ok := args.Get(0).([]ports.ProcessDefinition); ok {
		return defs, args.Error(1)
	}
	return nil, args.Error(1)
}

// mockTx embeds the transaction lifecycle shared by every mock unit of work.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMOUoW struct{ mockTx }

func (m *MockMOUoW) MORepository() ports.MORepository {
	args := m.Called()
	return args.Get(0).(ports.MORepository)
}

func (m *MockMOUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockMOUoWFactory struct{ mock.Mock }

func (m *MockMOUoWFactory) Create() commands.MOUoW {
	args := m.Called()
	return args.Get(0).(commands.MOUoW)
}

type MockBatchUoW struct{ mockTx }

func (m *MockBatchUoW) MORepository() ports.MORepository {
	args := m.Called()
	return args.Get(0).(ports.MORepository)
}

func (m *MockBatchUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockBatchUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockBatchUoWFactory struct{ mock.Mock }

func (m *MockBatchUoWFactory) Create() commands.BatchUoW {
	args := m.Called()
	return args.Get(0).(commands.BatchUoW)
}

type MockPipelineUoW struct{ mockTx }

func (m *MockPipelineUoW) MORepository() ports.MORepository {
	args := m.Called()
	return args.Get(0).(ports.MORepository)
}

func (m *MockPipelineUoW) ExecutionRepository() ports.ExecutionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutionRepository)
}

func (m *MockPipelineUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockPipelineUoWFactory struct{ mock.Mock }

func (m *MockPipelineUoWFactory) Create() commands.PipelineUoW {
	args := m.Called()
	return args.Get(0).(commands.PipelineUoW)
}

type MockAssignUoW struct{ mockTx }

func (m *MockAssignUoW) ExecutionRepository() ports.ExecutionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutionRepository)
}

func (m *MockAssignUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockAssignUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.AssignUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignUoW)
}

type MockFlowUoW struct{ mockTx }

func (m *MockFlowUoW) MORepository() ports.MORepository {
	args := m.Called()
	return args.Get(0).(ports.MORepository)
}

func (m *MockFlowUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockFlowUoW) ExecutionRepository() ports.ExecutionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutionRepository)
}

func (m *MockFlowUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

func (m *MockFlowUoW) VerificationRepository() ports.VerificationRepository {
	args := m.Called()
	return args.Get(0).(ports.VerificationRepository)
}

func (m *MockFlowUoW) ReceiptLogRepository() ports.ReceiptLogRepository {
	args := m.Called()
	return args.Get(0).(ports.ReceiptLogRepository)
}

func (m *MockFlowUoW) FGVerificationRepository() ports.FGVerificationRepository {
	args := m.Called()
	return args.Get(0).(ports.FGVerificationRepository)
}

func (m *MockFlowUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockFlowUoWFactory struct{ mock.Mock }

func (m *MockFlowUoWFactory) Create() commands.FlowUoW {
	args := m.Called()
	return args.Get(0).(commands.FlowUoW)
}

type MockReworkUoW struct{ mockTx }

func (m *MockReworkUoW) BatchRepository() ports.BatchRepository {
	args := m.Called()
	return args.Get(0).(ports.BatchRepository)
}

func (m *MockReworkUoW) ExecutionRepository() ports.ExecutionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutionRepository)
}

func (m *MockReworkUoW) CompletionRepository() ports.CompletionRepository {
	args := m.Called()
	return args.Get(0).(ports.CompletionRepository)
}

func (m *MockReworkUoW) ReworkBatchRepository() ports.ReworkBatchRepository {
	args := m.Called()
	return args.Get(0).(ports.ReworkBatchRepository)
}

func (m *MockReworkUoW) FIReworkRepository() ports.FIReworkRepository {
	args := m.Called()
	return args.Get(0).(ports.FIReworkRepository)
}

func (m *MockReworkUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockReworkUoWFactory struct{ mock.Mock }

func (m *MockReworkUoWFactory) Create() commands.ReworkUoW {
	args := m.Called()
	return args.Get(0).(commands.ReworkUoW)
}

type MockDowntimeUoW struct{ mockTx }

func (m *MockDowntimeUoW) ExecutionRepository() ports.ExecutionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExecutionRepository)
}

func (m *MockDowntimeUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

func (m *MockDowntimeUoW) LedgerRepository() ports.LedgerRepository {
	args := m.Called()
	return args.Get(0).(ports.LedgerRepository)
}

type MockDowntimeUoWFactory struct{ mock.Mock }

func (m *MockDowntimeUoWFactory) Create() commands.DowntimeUoW {
	args := m.Called()
	return args.Get(0).(commands.DowntimeUoW)
}

type MockSummaryUoW struct{ mockTx }

func (m *MockSummaryUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

func (m *MockSummaryUoW) SummaryRepository() ports.SummaryRepository {
	args := m.Called()
	return args.Get(0).(ports.SummaryRepository)
}

type MockSummaryUoWFactory struct{ mock.Mock }

func (m *MockSummaryUoWFactory) Create() commands.SummaryUoW {
	args := m.Called()
	return args.Get(0).(commands.SummaryUoW)
}
