package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/actions"
	"go-consult/common/database"
	"go-consult/common/gormscope"
	"go-consult/common/log"
	"go-consult/common/util"
	"go-consult/config"
)

const (
	ExportTaskStatusWaiting = "waiting"
	ExportTaskStatusDone    = "done"
)

// ExportTask produces one workbook for one task type. Do returns the object
// name the finished file was stored under.
type ExportTask interface {
	Do(ctx context.Context, task model.ExportTask) (string, error)
	GetTaskType() string
}

type ExportTaskService struct {
	typesMap      map[string]ExportTask
	durationWait  time.Duration
	durationShare time.Duration
}

func MakeExportTaskService(durationWait, durationShare time.Duration, tasks ...ExportTask) ExportTaskService {
	typesMap := make(map[string]ExportTask)
	for _, v := range tasks {
		typesMap[v.GetTaskType()] = v
	}
	return ExportTaskService{
		durationWait:  durationWait,
		durationShare: durationShare,
		typesMap:      typesMap,
	}
}

// Run polls for waiting tasks and executes them one at a time. It never
// returns; start it on its own goroutine.
func (s ExportTaskService) Run() {
	for {
		_ = log.WithTracer(context.Background(), PackageName, "async export service", func(ctx context.Context) error {
			var task model.ExportTask
			err := consult.GormDB.WithContext(ctx).
				Where("status = ?", ExportTaskStatusWaiting).
				First(&task).
				Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					consult.Logger().Error("query export task: ", err.Error())
				}
				time.Sleep(s.durationWait)
				return err
			}
			if exporter, ok := s.typesMap[task.Type]; ok {
				fileName, err := exporter.Do(ctx, task)
				if err != nil {
					consult.Logger().WithContext(ctx).Error("export task execute: ", err.Error())
					return err
				}
				task.Status = ExportTaskStatusDone
				task.FileName = fileName
				if err = consult.GormDB.WithContext(ctx).
					Where("id = ?", task.ID).
					Updates(&task).Error; err != nil {
					consult.Logger().Error("update export task: ", err.Error())
					return err
				}
			} else {
				consult.Logger().WithContext(ctx).Error("unknown export task type: ", task.Type)
				task.Status = ExportTaskStatusDone
				_ = consult.GormDB.WithContext(ctx).Where("id = ?", task.ID).Updates(&task).Error
			}
			return nil
		})
		time.Sleep(s.durationShare)
	}
}

type CreateExportTaskReq struct {
	Type string          `json:"type"`
	Args json.RawMessage `json:"args"`

	UserID int `json:"-"`
}

func CreateExportTask(ctx context.Context, req CreateExportTaskReq) (model.ExportTask, error) {
	task := model.ExportTask{
		UserID: req.UserID,
		Type:   req.Type,
		Args:   string(req.Args),
		Status: ExportTaskStatusWaiting,
	}
	if err := consult.GormDB.WithContext(ctx).Create(&task).Error; err != nil {
		consult.Logger().WithContext(ctx).Error("create export task: ", err.Error())
		return task, err
	}
	return task, nil
}

type SearchExportTaskReq struct {
	Status string `json:"status"`

	Pagination
}

type SearchExportTaskRespItem struct {
	CreatedAt string `json:"createdAt"`
	Type      string `json:"type"`
	Args      string `json:"args"`
	Status    string `json:"status"`
	ID        int    `json:"id"`
}

func SearchExportTask(ctx context.Context, req SearchExportTaskReq) ([]SearchExportTaskRespItem, int64, error) {
	var (
		count int64
		tasks = make([]model.ExportTask, 0, req.GetPageSize())
	)
	p := actions.GetPermissionFromContext(ctx)
	db := consult.GormDB.WithContext(ctx).
		Model(&model.ExportTask{}).
		Scopes(gormscope.Paginate(&req.Pagination))
	if p != nil && p.DataScope != "1" {
		db = db.Where("user_id = ?", p.UserId)
	}
	if req.Status != "" {
		db = db.Where("status = ?", req.Status)
	}
	db = db.Order("created_at desc").Find(&tasks)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("search export task: ", err.Error())
		return nil, 0, err
	}
	db = db.Limit(-1).Offset(-1).Count(&count)
	if err := db.Error; err != nil {
		consult.Logger().WithContext(ctx).Error("count export tasks: ", err.Error())
		return nil, 0, err
	}
	items := make([]SearchExportTaskRespItem, len(tasks))
	for idx, task := range tasks {
		items[idx] = SearchExportTaskRespItem{
			CreatedAt: task.CreatedAt.Format(util.TimeLayoutDatetimeN),
			Type:      task.Type,
			Args:      task.Args,
			Status:    task.Status,
			ID:        task.ID,
		}
	}
	return items, count, nil
}

type ExportTaskFileReq struct {
	ID int `form:"id"`
}

type ExportTaskFileResp struct {
	File     *string `json:"file"`
	FileName string  `json:"fileName"`
}

// ExportTaskFile returns the finished workbook base64-encoded.
func ExportTaskFile(ctx context.Context, req ExportTaskFileReq) (ExportTaskFileResp, error) {
	var task model.ExportTask
	err := consult.GormDB.WithContext(ctx).
		Where("id = ?", req.ID).
		First(&task).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Error("find export task: ", err.Error())
		return ExportTaskFileResp{}, err
	}
	if task.Status != ExportTaskStatusDone {
		return ExportTaskFileResp{}, errors.New("the export is still running, try again shortly")
	}
	obj, err := consult.MinIOClient.GetObject(ctx, config.ExtConfig.MinIO.ExportFileBucket, task.FileName, minio.GetObjectOptions{})
	if err != nil {
		consult.Logger().WithContext(ctx).Error("minio get file: ", err.Error())
		return ExportTaskFileResp{}, err
	}
	defer obj.Close()
	fileContent, err := io.ReadAll(obj)
	if err != nil {
		consult.Logger().WithContext(ctx).Error("read file: ", err.Error())
		return ExportTaskFileResp{}, err
	}
	result := base64.StdEncoding.EncodeToString(fileContent)
	return ExportTaskFileResp{
		&result,
		task.FileName,
	}, nil
}

// batchCollect drains a keyset-paginated query into memory.
func batchCollect[T any](db *gorm.DB, batch int, cols []database.OrderColumn, valueFunc func(T) []any) ([]T, error) {
	next := database.BatchQueryExcludeNull[T](db, batch, cols, valueFunc)
	out := make([]T, 0, batch)
	for {
		rows, err := next()
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return out, nil
		}
		out = append(out, rows...)
	}
}

func saveWorkbook(ctx context.Context, taskID int, label string, data [][]interface{}, columns []string) (string, error) {
	excelBuf, err := util.MakeExcelFromData(data, columns).WriteToBuffer()
	if err != nil {
		consult.Logger().WithContext(ctx).Error("write workbook: ", err.Error())
		return "", err
	}
	filename := strconv.Itoa(taskID) + "-" + util.GetExcelFileName(label)
	_, err = consult.MinIOClient.PutObject(ctx, config.ExtConfig.MinIO.ExportFileBucket,
		filename, excelBuf, -1, minio.PutObjectOptions{})
	if err != nil {
		consult.Logger().WithContext(ctx).Error("minio save file: ", err.Error())
		return "", err
	}
	return filename, nil
}

type exportArgs struct {
	ProjectID int    `json:"projectId"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

func parseExportArgs(ctx context.Context, task model.ExportTask) (exportArgs, error) {
	var args exportArgs
	if task.Args == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(task.Args), &args); err != nil {
		consult.Logger().WithContext(ctx).Error("export args unmarshal: ", err.Error())
		return args, err
	}
	return args, nil
}

// ExportStakeholdersTask writes the stakeholder register of a project.
type ExportStakeholdersTask struct {
	BatchSize int
}

func (t ExportStakeholdersTask) Do(ctx context.Context, task model.ExportTask) (string, error) {
	args, err := parseExportArgs(ctx, task)
	if err != nil {
		return "", err
	}
	db := consult.GormDB.WithContext(ctx).
		Scopes(actions.ProjectPermissionFromUserId(task.UserID, model.Stakeholder{}.TableName()))
	if args.ProjectID > 0 {
		db = db.Where("project_id = ?", args.ProjectID)
	}
	rows, err := batchCollect[model.Stakeholder](db, t.BatchSize, []database.OrderColumn{
		{ColumnName: "consult_stakeholder.id", Asc: true},
	}, func(s model.Stakeholder) []any {
		return []any{s.ID}
	})
	if err != nil {
		return "", err
	}
	data := make([][]interface{}, len(rows))
	for i, s := range rows {
		data[i] = []interface{}{
			i + 1, s.Name, s.Type, s.Organization, s.Party, s.Area, s.Email, s.Source,
			s.CreatedAt.Format(util.TimeLayoutDatetime),
		}
	}
	columns := []string{"No.", "Name", "Type", "Organisation", "Party", "Area", "Email", "Source", "Added"}
	return saveWorkbook(ctx, task.ID, "stakeholders", data, columns)
}

func (t ExportStakeholdersTask) GetTaskType() string {
	return "stakeholders"
}

// ExportEnquiriesTask writes the enquiry log of a project.
type ExportEnquiriesTask struct {
	BatchSize int
}

func (t ExportEnquiriesTask) Do(ctx context.Context, task model.ExportTask) (string, error) {
	args, err := parseExportArgs(ctx, task)
	if err != nil {
		return "", err
	}
	db := consult.GormDB.WithContext(ctx).
		Scopes(
			actions.ProjectPermissionFromUserId(task.UserID, model.Enquiry{}.TableName()),
			gormscope.CreateDateRange(args.Start, args.End, model.Enquiry{}.TableName()),
		)
	if args.ProjectID > 0 {
		db = db.Where("project_id = ?", args.ProjectID)
	}
	if args.Status != "" {
		db = db.Where("status = ?", args.Status)
	}
	rows, err := batchCollect[model.Enquiry](db, t.BatchSize, []database.OrderColumn{
		{ColumnName: "consult_enquiry.created_at", Asc: true},
		{ColumnName: "consult_enquiry.id", Asc: true},
	}, func(e model.Enquiry) []any {
		return []any{e.CreatedAt, e.ID}
	})
	if err != nil {
		return "", err
	}
	assigneeNames := t.assigneeNames(ctx, rows)
	data := make([][]interface{}, len(rows))
	for i, e := range rows {
		data[i] = []interface{}{
			i + 1, e.Name, util.MaskEmail(e.Email), e.Subject, e.Body, e.Status,
			assigneeNames[e.AssignedTo],
			e.CreatedAt.Format(util.TimeLayoutDatetime),
		}
	}
	columns := []string{"No.", "Name", "Email", "Subject", "Message", "Status", "Assigned to", "Received"}
	return saveWorkbook(ctx, task.ID, "enquiries", data, columns)
}

// assigneeNames resolves the usernames behind assigned_to ids. A lookup
// failure leaves the column blank rather than failing the export.
func (t ExportEnquiriesTask) assigneeNames(ctx context.Context, rows []model.Enquiry) map[int]string {
	ids := util.MakeCollectTint()
	for _, e := range rows {
		if e.AssignedTo > 0 {
			ids.Add(e.AssignedTo)
		}
	}
	names := make(map[int]string, ids.Size())
	if ids.Size() == 0 {
		return names
	}
	var users []model.SysUser
	err := consult.GormDB.WithContext(ctx).
		Where("user_id in ?", ids.Export()).
		Find(&users).Error
	if err != nil {
		consult.Logger().WithContext(ctx).Warn("resolve assignees: ", err.Error())
		return names
	}
	for _, u := range users {
		names[u.UserID] = u.Username
	}
	return names
}

func (t ExportEnquiriesTask) GetTaskType() string {
	return "enquiries"
}

// ExportSubscribersTask writes the mailing list of a project. Addresses are
// exported in full; this is the list owner's own data.
type ExportSubscribersTask struct {
	BatchSize int
}

func (t ExportSubscribersTask) Do(ctx context.Context, task model.ExportTask) (string, error) {
	args, err := parseExportArgs(ctx, task)
	if err != nil {
		return "", err
	}
	db := consult.GormDB.WithContext(ctx).
		Scopes(actions.ProjectPermissionFromUserId(task.UserID, model.Subscriber{}.TableName()))
	if args.ProjectID > 0 {
		db = db.Where("project_id = ?", args.ProjectID)
	}
	rows, err := batchCollect[model.Subscriber](db, t.BatchSize, []database.OrderColumn{
		{ColumnName: "consult_subscriber.id", Asc: true},
	}, func(s model.Subscriber) []any {
		return []any{s.ID}
	})
	if err != nil {
		return "", err
	}
	data := make([][]interface{}, len(rows))
	for i, s := range rows {
		data[i] = []interface{}{
			i + 1, s.Email, s.Name,
			util.SqlNullTimeToTimeFormat(s.ConfirmedAt),
			util.SqlNullTimeToTimeFormat(s.UnsubscribedAt),
			s.CreatedAt.Format(util.TimeLayoutDatetime),
		}
	}
	columns := []string{"No.", "Email", "Name", "Confirmed", "Unsubscribed", "Joined"}
	return saveWorkbook(ctx, task.ID, "subscribers", data, columns)
}

func (t ExportSubscribersTask) GetTaskType() string {
	return "subscribers"
}

// ExportPinsTask writes a project's map feedback, one row per pin.
type ExportPinsTask struct {
	BatchSize int
}

func (t ExportPinsTask) Do(ctx context.Context, task model.ExportTask) (string, error) {
	args, err := parseExportArgs(ctx, task)
	if err != nil {
		return "", err
	}
	db := consult.GormDB.WithContext(ctx).
		Scopes(
			actions.ProjectPermissionFromUserId(task.UserID, model.PublicPin{}.TableName()),
			gormscope.CreateDateRange(args.Start, args.End, model.PublicPin{}.TableName()),
		)
	if args.ProjectID > 0 {
		db = db.Where("project_id = ?", args.ProjectID)
	}
	if args.Status != "" {
		db = db.Where("status = ?", args.Status)
	}
	rows, err := batchCollect[model.PublicPin](db, t.BatchSize, []database.OrderColumn{
		{ColumnName: "consult_public_pin.created_at", Asc: true},
		{ColumnName: "consult_public_pin.id", Asc: true},
	}, func(p model.PublicPin) []any {
		return []any{p.CreatedAt, p.ID}
	})
	if err != nil {
		return "", err
	}
	data := make([][]interface{}, len(rows))
	for i, p := range rows {
		data[i] = []interface{}{
			i + 1, p.Kind, p.Geometry, p.Comment, util.MaskEmail(p.Email),
			p.Answers, p.Status, p.Agrees, p.Disagrees,
			p.CreatedAt.Format(util.TimeLayoutDatetime),
		}
	}
	columns := []string{"No.", "Kind", "Geometry", "Comment", "Email", "Answers",
		"Status", "Agrees", "Disagrees", "Created"}
	return saveWorkbook(ctx, task.ID, "pins", data, columns)
}

func (t ExportPinsTask) GetTaskType() string {
	return "pins"
}
