package cmd

import (
	"log/slog"
	"os"

	"mestrace/internal/adapters/out/masterdata"
	"mestrace/internal/adapters/out/notify"
	"mestrace/internal/adapters/out/postgres"
	"mestrace/internal/core/application/usecases/commands"
	"mestrace/internal/core/application/usecases/queries"
	"mestrace/internal/core/domain/services"
	"mestrace/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// standardPipeline is the shop's default route, served for every product
// until the ERP routing integration lands.
func standardPipeline() []ports.ProcessDefinition {
	return []ports.ProcessDefinition{
		{Code: "COIL-01", Name: "Coiling", SequenceOrder: 1},
		{Code: "HT-01", Name: "Heat treatment", SequenceOrder: 2},
		{Code: "GRD-01", Name: "End grinding", SequenceOrder: 3},
		{Code: "SP-01", Name: "Shot peening", SequenceOrder: 4},
		{Code: "FI-01", Name: "Final inspection", SequenceOrder: 5},
	}
}

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	publisher  ports.EventPublisher
	inventory  ports.InventoryLookup
	catalog    ports.ProcessCatalog
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	catalog, err := masterdata.NewUniformProcessCatalog(standardPipeline())
	if err != nil {
		log.Fatalf("invalid standard pipeline: %v", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		publisher:  notify.NewSlogEventPublisher(logger),
		inventory:  masterdata.NewPermissiveInventory(),
		catalog:    catalog,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateMOCommandHandler() commands.CreateMOCommandHandler {
	var f commands.MOUoWFactory = FuncMOUoWFactory(func() commands.MOUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMOCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateApproveMOCommandHandler() commands.ApproveMOCommandHandler {
	var f commands.MOUoWFactory = FuncMOUoWFactory(func() commands.MOUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveMOCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRejectMOCommandHandler() commands.RejectMOCommandHandler {
	var f commands.MOUoWFactory = FuncMOUoWFactory(func() commands.MOUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectMOCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateRMCommandHandler() commands.AllocateRMCommandHandler {
	var f commands.MOUoWFactory = FuncMOUoWFactory(func() commands.MOUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateRMCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreatePipelineCommandHandler() commands.CreatePipelineCommandHandler {
	var f commands.PipelineUoWFactory = FuncPipelineUoWFactory(func() commands.PipelineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePipelineCommandHandler(f, c.catalog)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBatchCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOperatorCommandHandler() commands.AssignOperatorCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOperatorCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReassignOperatorCommandHandler() commands.ReassignOperatorCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignOperatorCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAllocateBatchCommandHandler() commands.AllocateBatchCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateBatchCommandHandler(f, c.inventory, c.publisher)
}

func (c *CompositionRoot) CreateReceiveBatchCommandHandler() commands.ReceiveBatchCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveBatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateVerifyReceiptCommandHandler() commands.VerifyReceiptCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyReceiptCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartProcessingCommandHandler() commands.StartProcessingCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartProcessingCommandHandler(f)
}

func (c *CompositionRoot) CreateReturnBatchCommandHandler() commands.ReturnBatchCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReturnBatchCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordFGQualityCheckCommandHandler() commands.RecordFGQualityCheckCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordFGQualityCheckCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateDispatchFGCommandHandler() commands.DispatchFGCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchFGCommandHandler(f)
}

func (c *CompositionRoot) CreateClearHoldCommandHandler() commands.ClearHoldCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClearHoldCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveIssueCommandHandler() commands.ResolveIssueCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveIssueCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteProcessCommandHandler() commands.CompleteProcessCommandHandler {
	var f commands.FlowUoWFactory = FuncFlowUoWFactory(func() commands.FlowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteProcessCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordCompletionCommandHandler() commands.RecordCompletionCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordCompletionCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartReworkCommandHandler() commands.StartReworkCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartReworkCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteReworkCommandHandler() commands.CompleteReworkCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteReworkCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateFIReworkCommandHandler() commands.CreateFIReworkCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateFIReworkCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStartFIReworkCommandHandler() commands.StartFIReworkCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartFIReworkCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteFIReworkCommandHandler() commands.CompleteFIReworkCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteFIReworkCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReinspectCommandHandler() commands.ReinspectCommandHandler {
	var f commands.ReworkUoWFactory = FuncReworkUoWFactory(func() commands.ReworkUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReinspectCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateStopProcessCommandHandler() commands.StopProcessCommandHandler {
	var f commands.DowntimeUoWFactory = FuncDowntimeUoWFactory(func() commands.DowntimeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStopProcessCommandHandler(f)
}

func (c *CompositionRoot) CreateResumeProcessCommandHandler() commands.ResumeProcessCommandHandler {
	var f commands.DowntimeUoWFactory = FuncDowntimeUoWFactory(func() commands.DowntimeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeProcessCommandHandler(f)
}

func (c *CompositionRoot) CreateRefreshDowntimeSummariesCommandHandler() commands.RefreshDowntimeSummariesCommandHandler {
	var f commands.SummaryUoWFactory = FuncSummaryUoWFactory(func() commands.SummaryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshDowntimeSummariesCommandHandler(f, services.NewDowntimeAggregator())
}

func (c *CompositionRoot) CreateGetRemainingToAllocateQueryHandler() queries.GetRemainingToAllocateQueryHandler {
	return queries.NewGetRemainingToAllocateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedBatchesQueryHandler() queries.GetUncompletedBatchesQueryHandler {
	return queries.NewGetUncompletedBatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchTimelineQueryHandler() queries.GetBatchTimelineQueryHandler {
	return queries.NewGetBatchTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDowntimeSummaryQueryHandler() queries.GetDowntimeSummaryQueryHandler {
	return queries.NewGetDowntimeSummaryQueryHandler(c.gormDB)
}

type FuncMOUoWFactory func() commands.MOUoW

func (f FuncMOUoWFactory) Create() commands.MOUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncPipelineUoWFactory func() commands.PipelineUoW

func (f FuncPipelineUoWFactory) Create() commands.PipelineUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

type FuncFlowUoWFactory func() commands.FlowUoW

func (f FuncFlowUoWFactory) Create() commands.FlowUoW {
	return f()
}

type FuncReworkUoWFactory func() commands.ReworkUoW

func (f FuncReworkUoWFactory) Create() commands.ReworkUoW {
	return f()
}

type FuncDowntimeUoWFactory func() commands.DowntimeUoW

func (f FuncDowntimeUoWFactory) Create() commands.DowntimeUoW {
	return f()
}

type FuncSummaryUoWFactory func() commands.SummaryUoW

func (f FuncSummaryUoWFactory) Create() commands.SummaryUoW {
	return f()
}
