package orgchart

import (
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
)

// Node ids are namespaced so position and employee ids can never
// collide in the client-side tree widget.
const (
	positionIDPrefix = "puesto_"
	employeeIDPrefix = "empleado_"

	employeeIcon = "fas fa-user text-secondary"
)

// Node is one element of the jsTree payload.
type Node struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Icon     string            `json:"icon,omitempty"`
	Attrs    map[string]string `json:"li_attr,omitempty"`
	Children []*Node           `json:"children"`
}

// BuildForest converts flat position and employee sets into the org
// chart forest: employees nest under their position, positions nest
// under their boss position. A position whose boss id is absent from
// the input set becomes a root; that fallback is deliberate, not a
// validation failure. Children keep the input order. The boss relation
// must be acyclic for the result to be a forest.
func BuildForest(positions []position.Position, employees []employee.Employee) []*Node {
	nodes := make(map[string]*Node, len(positions))
	for _, p := range positions {
		nodes[p.ID] = &Node{
			ID:       positionIDPrefix + p.ID,
			Text:     p.Name,
			Children: []*Node{},
		}
	}

	for _, e := range employees {
		if e.PositionID == nil {
			continue
		}
		parent, ok := nodes[*e.PositionID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, &Node{
			ID:   employeeIDPrefix + e.ID,
			Text: e.FullName,
			Icon: employeeIcon,
			// Raw employee id for the client-side move action.
			Attrs:    map[string]string{"data-employee-id": e.ID},
			Children: []*Node{},
		})
	}

	forest := []*Node{}
	for _, p := range positions {
		node := nodes[p.ID]
		if p.BossPositionID != nil {
			if boss, ok := nodes[*p.BossPositionID]; ok {
				boss.Children = append(boss.Children, node)
				continue
			}
		}
		forest = append(forest, node)
	}

	return forest
}
