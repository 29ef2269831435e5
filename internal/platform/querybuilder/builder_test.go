package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "home_team_id").
		From("matches").
		Where(Or(Eq("home_team_id", int64(65)), Eq("away_team_id", int64(65))), Gte("match_date", "2024-05-01")).
		OrderBy("match_date ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, home_team_id FROM matches WHERE (home_team_id = $1 OR away_team_id = $2) AND match_date >= $3 ORDER BY match_date ASC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{int64(65), int64(65), "2024-05-01"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyOrMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("id", "name").
		Values(int64(1), "Saka").
		Values(int64(2), "Rice").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "Rice" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("matches_updated_at", "2024-05-01T00:00:00Z").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(65))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE teams SET matches_updated_at = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != int64(65) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("team_id", int64(65))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE team_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query=%s args=%+v", query, args)
	}

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for unfiltered delete")
	}
}

type rowModel struct {
	ID      int64   `db:"id"`
	Name    string  `db:"name"`
	Rating  float64 `db:"rating,omitempty"`
	Ignored string  `db:"-"`
	hidden  string
}

func TestInsertModels(t *testing.T) {
	rows := []rowModel{{ID: 1, Name: "Saka", Rating: 7.5}, {ID: 2, Name: "Rice", hidden: "x"}}
	query, args, err := InsertModels("players", rows, "")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name, rating) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[2] != 7.5 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if cols := ColumnsOf(rowModel{}); !reflect.DeepEqual(cols, []string{"id", "name", "rating"}) {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	if _, _, err := InsertModels[rowModel]("players", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
