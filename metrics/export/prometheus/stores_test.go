package prometheus

import (
	"context"

	goStudio "github.com/MrEthical07/goStudio"
)

type nopUsers struct{}

func (nopUsers) FindByIdentifier(context.Context, string) (*goStudio.UserRecord, error) {
	return nil, nil
}

func (nopUsers) FindByID(context.Context, int64) (*goStudio.UserRecord, error) {
	return nil, nil
}

func (nopUsers) ExistsByIdentifier(context.Context, string) (bool, error) {
	return false, nil
}

func (nopUsers) Create(context.Context, *goStudio.UserRecord) error {
	return nil
}

func (nopUsers) DeleteByIdentifier(context.Context, string) error {
	return nil
}

type nopSessions struct{}

func (nopSessions) FindByID(context.Context, int64) (*goStudio.Session, error) {
	return nil, nil
}

func (nopSessions) List(context.Context) ([]*goStudio.Session, error) {
	return nil, nil
}

func (nopSessions) Create(context.Context, *goStudio.Session) error {
	return nil
}

func (nopSessions) Save(context.Context, *goStudio.Session) error {
	return nil
}

func (nopSessions) Delete(context.Context, int64) error {
	return nil
}

type nopTeachers struct{}

func (nopTeachers) FindByID(context.Context, int64) (*goStudio.Teacher, error) {
	return nil, nil
}

func (nopTeachers) List(context.Context) ([]*goStudio.Teacher, error) {
	return nil, nil
}

func (nopTeachers) Create(context.Context, *goStudio.Teacher) error {
	return nil
}
