package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/crackgrid/internal/app/models"
	appRepos "github.com/yigit/crackgrid/internal/app/repositories"
	"github.com/yigit/crackgrid/internal/db"
	"github.com/yigit/crackgrid/internal/pkg/apperrors"
)

// Drive is the sample data of one company's placement drive in one year
type Drive struct {
	Year     int
	Company  string
	Website  string
	DocTitle string
	DocLink  string
	Students []appModels.Person
	Photos   []string
}

func strPtr(s string) *string { return &s }

// DefaultDrives is the sample catalog written on first boot. Years and
// companies deliberately overlap between documents and placements.
var DefaultDrives = []Drive{
	{
		Year: 2024, Company: "Acme Systems", Website: "https://acme.example",
		DocTitle: "Acme Systems 2024 interview questions",
		DocLink:  "https://docs.google.com/document/d/1acme2024Questions/edit?usp=sharing",
		Students: []appModels.Person{
			{FullName: "Riya Shah", Branch: "CSE", GraduationYear: 2024, LinkedInURL: strPtr("https://www.linkedin.com/in/riya-shah")},
			{FullName: "Arjun Rao", Branch: "ECE", GraduationYear: 2024},
		},
		Photos: []string{"https://images.example/acme-2024-1.jpg"},
	},
	{
		Year: 2024, Company: "Beta Analytics",
		DocTitle: "Beta Analytics 2024 interview questions",
		DocLink:  "https://docs.google.com/document/d/1beta2024Questions/edit",
	},
	{
		Year: 2023, Company: "Acme Systems",
		Students: []appModels.Person{
			{FullName: "Meera Iyer", Branch: "IT", GraduationYear: 2023},
		},
	},
	{
		Year: 2022, Company: "Cee Labs", Website: "https://ceelabs.example",
		DocTitle: "Cee Labs 2022 interview questions",
		DocLink:  "https://docs.google.com/document/d/1cee2022Questions/view",
		Students: []appModels.Person{
			{FullName: "Kabir Singh", Branch: "ME", GraduationYear: 2022},
		},
		Photos: []string{"https://images.example/cee-2022-1.jpg", "https://images.example/cee-2022-2.jpg"},
	},
}

// CreateDefaultData writes DefaultDrives in a single transaction. It does
// nothing when the first sample company already exists.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	if len(DefaultDrives) == 0 {
		return nil
	}

	probe := appRepos.NewCompanyRepository(database.Pool)
	_, err := probe.GetByName(ctx, DefaultDrives[0].Company)
	if err == nil {
		lgr.Info().Msg("Default data already present, skipping seed")
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("error checking for default data: %w", err)
	}

	lgr.Info().Int("drives", len(DefaultDrives)).Msg("Creating default data...")
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return insertDrives(ctx, appRepos.NewRepositories(tx), DefaultDrives)
	})
}

func insertDrives(ctx context.Context, repos *appRepos.Repositories, drives []Drive) error {
	companyIDs := map[string]int64{}

	for _, d := range drives {
		companyID, ok := companyIDs[d.Company]
		if !ok {
			company := &appModels.Company{Name: d.Company}
			if d.Website != "" {
				company.Website = strPtr(d.Website)
			}
			if err := repos.CompanyRepository.Create(ctx, company); err != nil {
				return fmt.Errorf("seeding company %s: %w", d.Company, err)
			}
			companyID = company.ID
			companyIDs[d.Company] = companyID
		}

		if d.DocLink != "" {
			doc := &appModels.InterviewDocument{Year: d.Year, CompanyID: companyID, Title: d.DocTitle, QuestionsLink: d.DocLink}
			if err := repos.InterviewDocumentRepository.Create(ctx, doc); err != nil {
				return fmt.Errorf("seeding document for %s %d: %w", d.Company, d.Year, err)
			}
		}

		for _, student := range d.Students {
			person := student
			if err := repos.PlacementRepository.CreatePerson(ctx, &person); err != nil {
				return fmt.Errorf("seeding person %s: %w", person.FullName, err)
			}
			placement := &appModels.Placement{Year: d.Year, CompanyID: companyID, PersonID: person.ID}
			if err := repos.PlacementRepository.Create(ctx, placement); err != nil {
				return fmt.Errorf("seeding placement of %s: %w", person.FullName, err)
			}
		}

		for _, url := range d.Photos {
			photo := &appModels.PlacementPhoto{Year: d.Year, CompanyID: companyID, ImageURL: url}
			if err := repos.PhotoRepository.Create(ctx, photo); err != nil {
				return fmt.Errorf("seeding photo for %s %d: %w", d.Company, d.Year, err)
			}
		}
	}
	return nil
}
